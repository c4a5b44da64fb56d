package dto

import (
	"time"

	"github.com/SscSPs/collections_app/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a client.
type CreateClientRequest struct {
	Name               string `json:"name" binding:"required,max=255"`
	CollectionAgencyID int64  `json:"collection_agency_id" binding:"required,gt=0"`
}

// UpdateClientRequest defines the fields that may be updated on a client.
type UpdateClientRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=1,max=255"`
	CollectionAgencyID *int64  `json:"collection_agency_id" binding:"omitempty,gt=0"`
}

// ClientResponse defines the data returned for a client, with its agency nested.
type ClientResponse struct {
	ID               int64                     `json:"id"`
	Name             string                    `json:"name"`
	CollectionAgency *CollectionAgencyResponse `json:"collection_agency"`
	CreatedAt        time.Time                 `json:"created_at"`
}

// ListClientsResponse is one cursor page of clients.
type ListClientsResponse struct {
	Next    *string          `json:"next"`
	Results []ClientResponse `json:"results"`
}

// ToClientResponse converts a domain.Client to its DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	res := ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
	if c.CollectionAgency != nil {
		agency := ToCollectionAgencyResponse(c.CollectionAgency)
		res.CollectionAgency = &agency
	}
	return res
}

// ToListClientsResponse converts a page of clients to its DTO
func ToListClientsResponse(clients []domain.Client, next *string) ListClientsResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return ListClientsResponse{Next: next, Results: res}
}
