package repositories

import (
	"context"

	"github.com/SscSPs/collections_app/internal/core/domain"
)

// CollectionAgencyReader defines read operations for collection agency data
type CollectionAgencyReader interface {
	// FindCollectionAgencyByID retrieves a specific agency by its ID.
	FindCollectionAgencyByID(ctx context.Context, agencyID int64) (*domain.CollectionAgency, error)

	// ListCollectionAgencies retrieves a page of agencies ordered by creation time.
	// It returns the agencies, a cursor for the next page (nil on the last page), and an error.
	ListCollectionAgencies(ctx context.Context, limit int, cursor *string) ([]domain.CollectionAgency, *string, error)
}

// CollectionAgencyWriter defines write operations for collection agency data
type CollectionAgencyWriter interface {
	// SaveCollectionAgency inserts a new agency and fills in its ID and timestamps.
	SaveCollectionAgency(ctx context.Context, agency *domain.CollectionAgency) error

	// UpdateCollectionAgency updates an existing agency's details.
	UpdateCollectionAgency(ctx context.Context, agency *domain.CollectionAgency) error

	// DeleteCollectionAgency removes an agency together with its clients and their accounts.
	DeleteCollectionAgency(ctx context.Context, agencyID int64) error
}

// CollectionAgencyRepositoryFacade combines all agency-related repository interfaces
type CollectionAgencyRepositoryFacade interface {
	CollectionAgencyReader
	CollectionAgencyWriter
}
