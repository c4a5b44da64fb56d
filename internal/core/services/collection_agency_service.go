package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	portsrepo "github.com/SscSPs/collections_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
	"github.com/SscSPs/collections_app/internal/dto"
	"github.com/SscSPs/collections_app/internal/utils/pagination"
)

type collectionAgencyService struct {
	BaseService
	agencyRepo portsrepo.CollectionAgencyRepositoryFacade
}

// NewCollectionAgencyService creates a new collection agency service.
func NewCollectionAgencyService(repo portsrepo.CollectionAgencyRepositoryFacade) portssvc.CollectionAgencySvcFacade {
	return &collectionAgencyService{agencyRepo: repo}
}

var _ portssvc.CollectionAgencySvcFacade = (*collectionAgencyService)(nil)

func (s *collectionAgencyService) CreateCollectionAgency(ctx context.Context, req dto.CreateCollectionAgencyRequest) (*domain.CollectionAgency, error) {
	agency := domain.CollectionAgency{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
	}
	if err := s.agencyRepo.SaveCollectionAgency(ctx, &agency); err != nil {
		s.LogError(ctx, err, "Failed to save collection agency", slog.String("name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Collection agency created", slog.Int64("collection_agency_id", agency.ID))
	return &agency, nil
}

func (s *collectionAgencyService) GetCollectionAgencyByID(ctx context.Context, agencyID int64) (*domain.CollectionAgency, error) {
	agency, err := s.agencyRepo.FindCollectionAgencyByID(ctx, agencyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find collection agency", slog.Int64("collection_agency_id", agencyID))
		}
		return nil, err
	}
	return agency, nil
}

func (s *collectionAgencyService) ListCollectionAgencies(ctx context.Context, cursor *string) ([]domain.CollectionAgency, *string, error) {
	agencies, next, err := s.agencyRepo.ListCollectionAgencies(ctx, pagination.PageSize, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list collection agencies")
		return nil, nil, err
	}
	if agencies == nil {
		agencies = []domain.CollectionAgency{}
	}
	return agencies, next, nil
}

func (s *collectionAgencyService) UpdateCollectionAgency(ctx context.Context, agencyID int64, req dto.UpdateCollectionAgencyRequest) (*domain.CollectionAgency, error) {
	agency, err := s.GetCollectionAgencyByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		agency.Name = *req.Name
	}
	if req.ContactInfo != nil {
		agency.ContactInfo = *req.ContactInfo
	}

	if err := s.agencyRepo.UpdateCollectionAgency(ctx, agency); err != nil {
		s.LogError(ctx, err, "Failed to update collection agency", slog.Int64("collection_agency_id", agencyID))
		return nil, err
	}
	return agency, nil
}

func (s *collectionAgencyService) DeleteCollectionAgency(ctx context.Context, agencyID int64) error {
	if err := s.agencyRepo.DeleteCollectionAgency(ctx, agencyID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete collection agency", slog.Int64("collection_agency_id", agencyID))
		}
		return err
	}
	s.LogInfo(ctx, "Collection agency deleted", slog.Int64("collection_agency_id", agencyID))
	return nil
}
