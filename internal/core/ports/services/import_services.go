package services

import (
	"context"
	"io"

	"github.com/SscSPs/collections_app/internal/core/domain"
)

// ImportSvc reconciles accounts and consumers from CSV files.
type ImportSvc interface {
	// ImportAccountsCSV validates the CSV read from r and applies it atomically
	// on behalf of the given agency and client.
	ImportAccountsCSV(ctx context.Context, agencyID, clientID int64, r io.Reader) (*domain.ImportResult, error)
}

// EventPublisher delivers domain events to downstream consumers.
type EventPublisher interface {
	PublishAccountsImported(ctx context.Context, event domain.AccountsImportedEvent) error
	Close() error
}
