package services

import (
	"context"

	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/dto"
)

// ClientReaderSvc defines read operations for clients
type ClientReaderSvc interface {
	// GetClientByID retrieves a specific client, with its agency, by ID.
	GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error)

	// ListClients retrieves one cursor page of clients.
	ListClients(ctx context.Context, cursor *string) ([]domain.Client, *string, error)
}

// ClientWriterSvc defines write operations for clients
type ClientWriterSvc interface {
	// CreateClient persists a new client under an existing agency.
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error)

	// UpdateClient updates the client's name and/or agency.
	UpdateClient(ctx context.Context, clientID int64, req dto.UpdateClientRequest) (*domain.Client, error)

	DeleteClient(ctx context.Context, clientID int64) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
