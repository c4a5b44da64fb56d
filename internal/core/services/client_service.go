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

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
	agencyRepo portsrepo.CollectionAgencyReader
}

// NewClientService creates a new client service. The agency reader is used to
// check the agency a client is assigned to.
func NewClientService(repo portsrepo.ClientRepositoryFacade, agencyRepo portsrepo.CollectionAgencyReader) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: repo, agencyRepo: agencyRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	if err := s.ensureAgencyExists(ctx, req.CollectionAgencyID); err != nil {
		return nil, err
	}

	client := domain.Client{Name: req.Name, CollectionAgencyID: req.CollectionAgencyID}
	if err := s.clientRepo.SaveClient(ctx, &client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Client created", slog.Int64("client_id", client.ID))

	return s.clientRepo.FindClientByID(ctx, client.ID)
}

func (s *clientService) GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find client", slog.Int64("client_id", clientID))
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, cursor *string) ([]domain.Client, *string, error) {
	clients, next, err := s.clientRepo.ListClients(ctx, pagination.PageSize, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, nil, err
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, next, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID int64, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.CollectionAgencyID != nil && *req.CollectionAgencyID != client.CollectionAgencyID {
		if err := s.ensureAgencyExists(ctx, *req.CollectionAgencyID); err != nil {
			return nil, err
		}
		client.CollectionAgencyID = *req.CollectionAgencyID
	}

	if err := s.clientRepo.UpdateClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.Int64("client_id", clientID))
		return nil, err
	}
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) DeleteClient(ctx context.Context, clientID int64) error {
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete client", slog.Int64("client_id", clientID))
		}
		return err
	}
	s.LogInfo(ctx, "Client deleted", slog.Int64("client_id", clientID))
	return nil
}

func (s *clientService) ensureAgencyExists(ctx context.Context, agencyID int64) error {
	if _, err := s.agencyRepo.FindCollectionAgencyByID(ctx, agencyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Newf(apperrors.ErrValidation, "collection agency with ID %d does not exist", agencyID)
		}
		return err
	}
	return nil
}
