package services

import (
	"context"

	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/dto"
)

// CollectionAgencyReaderSvc defines read operations for collection agencies
type CollectionAgencyReaderSvc interface {
	// GetCollectionAgencyByID retrieves a specific agency by its ID.
	GetCollectionAgencyByID(ctx context.Context, agencyID int64) (*domain.CollectionAgency, error)

	// ListCollectionAgencies retrieves one cursor page of agencies.
	ListCollectionAgencies(ctx context.Context, cursor *string) ([]domain.CollectionAgency, *string, error)
}

// CollectionAgencyWriterSvc defines write operations for collection agencies
type CollectionAgencyWriterSvc interface {
	CreateCollectionAgency(ctx context.Context, req dto.CreateCollectionAgencyRequest) (*domain.CollectionAgency, error)
	UpdateCollectionAgency(ctx context.Context, agencyID int64, req dto.UpdateCollectionAgencyRequest) (*domain.CollectionAgency, error)
	DeleteCollectionAgency(ctx context.Context, agencyID int64) error
}

// CollectionAgencySvcFacade combines all agency-related service interfaces
type CollectionAgencySvcFacade interface {
	CollectionAgencyReaderSvc
	CollectionAgencyWriterSvc
}
