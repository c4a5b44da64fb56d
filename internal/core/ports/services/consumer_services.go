package services

import (
	"context"

	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/dto"
)

// ConsumerReaderSvc defines read operations for consumers
type ConsumerReaderSvc interface {
	GetConsumerByID(ctx context.Context, consumerID int64) (*domain.Consumer, error)
	ListConsumers(ctx context.Context, cursor *string) ([]domain.Consumer, *string, error)
}

// ConsumerWriterSvc defines write operations for consumers
type ConsumerWriterSvc interface {
	CreateConsumer(ctx context.Context, req dto.CreateConsumerRequest) (*domain.Consumer, error)
	UpdateConsumer(ctx context.Context, consumerID int64, req dto.UpdateConsumerRequest) (*domain.Consumer, error)
	DeleteConsumer(ctx context.Context, consumerID int64) error
}

// ConsumerSvcFacade combines all consumer-related service interfaces
type ConsumerSvcFacade interface {
	ConsumerReaderSvc
	ConsumerWriterSvc
}
