package repositories

import (
	"context"

	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ConsumerReader defines read operations for consumer data
type ConsumerReader interface {
	// FindConsumerByID retrieves a specific consumer by its ID.
	FindConsumerByID(ctx context.Context, consumerID int64) (*domain.Consumer, error)

	// ListConsumers retrieves a page of consumers ordered by creation time.
	ListConsumers(ctx context.Context, limit int, cursor *string) ([]domain.Consumer, *string, error)
}

// ConsumerWriter defines write operations for consumer data
type ConsumerWriter interface {
	// SaveConsumer inserts a new consumer and fills in its ID and timestamps.
	SaveConsumer(ctx context.Context, consumer *domain.Consumer) error

	// UpdateConsumer updates an existing consumer's details.
	UpdateConsumer(ctx context.Context, consumer *domain.Consumer) error

	// DeleteConsumer removes a consumer and its account links.
	DeleteConsumer(ctx context.Context, consumerID int64) error
}

// ConsumerImportSupport defines the transactional operations used by the CSV importer.
type ConsumerImportSupport interface {
	// FindConsumerBySSNInTx returns the oldest consumer with the given SSN, or ErrNotFound.
	FindConsumerBySSNInTx(ctx context.Context, tx pgx.Tx, ssn string) (*domain.Consumer, error)

	// SaveConsumerInTx inserts a consumer within tx and fills in its ID and timestamps.
	SaveConsumerInTx(ctx context.Context, tx pgx.Tx, consumer *domain.Consumer) error
}

// ConsumerRepositoryFacade combines all consumer-related repository interfaces
type ConsumerRepositoryFacade interface {
	ConsumerReader
	ConsumerWriter
	ConsumerImportSupport
}
