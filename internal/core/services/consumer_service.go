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

type consumerService struct {
	BaseService
	consumerRepo portsrepo.ConsumerRepositoryFacade
}

// NewConsumerService creates a new consumer service.
func NewConsumerService(repo portsrepo.ConsumerRepositoryFacade) portssvc.ConsumerSvcFacade {
	return &consumerService{consumerRepo: repo}
}

var _ portssvc.ConsumerSvcFacade = (*consumerService)(nil)

func (s *consumerService) CreateConsumer(ctx context.Context, req dto.CreateConsumerRequest) (*domain.Consumer, error) {
	consumer := domain.Consumer{
		Name:    req.Name,
		Address: req.Address,
		SSN:     req.SSN,
	}
	if err := s.consumerRepo.SaveConsumer(ctx, &consumer); err != nil {
		s.LogError(ctx, err, "Failed to save consumer")
		return nil, err
	}
	s.LogInfo(ctx, "Consumer created", slog.Int64("consumer_id", consumer.ID))
	return &consumer, nil
}

func (s *consumerService) GetConsumerByID(ctx context.Context, consumerID int64) (*domain.Consumer, error) {
	consumer, err := s.consumerRepo.FindConsumerByID(ctx, consumerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find consumer", slog.Int64("consumer_id", consumerID))
		}
		return nil, err
	}
	return consumer, nil
}

func (s *consumerService) ListConsumers(ctx context.Context, cursor *string) ([]domain.Consumer, *string, error) {
	consumers, next, err := s.consumerRepo.ListConsumers(ctx, pagination.PageSize, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list consumers")
		return nil, nil, err
	}
	if consumers == nil {
		consumers = []domain.Consumer{}
	}
	return consumers, next, nil
}

func (s *consumerService) UpdateConsumer(ctx context.Context, consumerID int64, req dto.UpdateConsumerRequest) (*domain.Consumer, error) {
	consumer, err := s.GetConsumerByID(ctx, consumerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		consumer.Name = *req.Name
	}
	if req.Address != nil {
		consumer.Address = *req.Address
	}
	if req.SSN != nil {
		consumer.SSN = *req.SSN
	}

	if err := s.consumerRepo.UpdateConsumer(ctx, consumer); err != nil {
		s.LogError(ctx, err, "Failed to update consumer", slog.Int64("consumer_id", consumerID))
		return nil, err
	}
	return consumer, nil
}

func (s *consumerService) DeleteConsumer(ctx context.Context, consumerID int64) error {
	if err := s.consumerRepo.DeleteConsumer(ctx, consumerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete consumer", slog.Int64("consumer_id", consumerID))
		}
		return err
	}
	s.LogInfo(ctx, "Consumer deleted", slog.Int64("consumer_id", consumerID))
	return nil
}
