package repositories

import (
	"context"

	"github.com/SscSPs/collections_app/internal/core/domain"
)

// ClientReader defines read operations for client data.
// Returned clients carry their CollectionAgency.
type ClientReader interface {
	// FindClientByID retrieves a specific client by its ID.
	FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error)

	// ListClients retrieves a page of clients ordered by creation time.
	ListClients(ctx context.Context, limit int, cursor *string) ([]domain.Client, *string, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient inserts a new client and fills in its ID and timestamps.
	SaveClient(ctx context.Context, client *domain.Client) error

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, client *domain.Client) error

	// DeleteClient removes a client together with its accounts.
	DeleteClient(ctx context.Context, clientID int64) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
