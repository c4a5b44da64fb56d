package dto

import (
	"github.com/SscSPs/collections_app/internal/core/domain"
)

// CreateConsumerRequest defines the data needed to create a consumer.
type CreateConsumerRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Address string `json:"address" binding:"required"`
	SSN     string `json:"ssn" binding:"required,ssn"`
}

// UpdateConsumerRequest defines the fields that may be updated on a consumer.
type UpdateConsumerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address *string `json:"address" binding:"omitempty,min=1"`
	SSN     *string `json:"ssn" binding:"omitempty,ssn"`
}

// ConsumerResponse defines the data returned for a consumer.
type ConsumerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	SSN     string `json:"ssn"`
}

// ListConsumersResponse is one cursor page of consumers.
type ListConsumersResponse struct {
	Next    *string            `json:"next"`
	Results []ConsumerResponse `json:"results"`
}

// ToConsumerResponse converts a domain.Consumer to its DTO
func ToConsumerResponse(c *domain.Consumer) ConsumerResponse {
	return ConsumerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		SSN:     c.SSN,
	}
}

// ToConsumerResponses converts a slice of domain.Consumer to DTOs
func ToConsumerResponses(consumers []domain.Consumer) []ConsumerResponse {
	res := make([]ConsumerResponse, len(consumers))
	for i := range consumers {
		res[i] = ToConsumerResponse(&consumers[i])
	}
	return res
}

// ToListConsumersResponse converts a page of consumers to its DTO
func ToListConsumersResponse(consumers []domain.Consumer, next *string) ListConsumersResponse {
	return ListConsumersResponse{Next: next, Results: ToConsumerResponses(consumers)}
}
