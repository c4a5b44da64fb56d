package dto

import (
	"time"

	"github.com/SscSPs/collections_app/internal/core/domain"
)

// CreateCollectionAgencyRequest defines the data needed to create a collection agency.
type CreateCollectionAgencyRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	ContactInfo string `json:"contact_info"`
}

// UpdateCollectionAgencyRequest defines the fields that may be updated on an agency.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCollectionAgencyRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	ContactInfo *string `json:"contact_info"`
}

// CollectionAgencyResponse defines the data returned for an agency.
type CollectionAgencyResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListCollectionAgenciesResponse is one cursor page of agencies.
type ListCollectionAgenciesResponse struct {
	Next    *string                    `json:"next"`
	Results []CollectionAgencyResponse `json:"results"`
}

// ToCollectionAgencyResponse converts a domain.CollectionAgency to its DTO
func ToCollectionAgencyResponse(a *domain.CollectionAgency) CollectionAgencyResponse {
	return CollectionAgencyResponse{
		ID:          a.ID,
		Name:        a.Name,
		ContactInfo: a.ContactInfo,
		CreatedAt:   a.CreatedAt,
	}
}

// ToListCollectionAgenciesResponse converts a page of agencies to its DTO
func ToListCollectionAgenciesResponse(agencies []domain.CollectionAgency, next *string) ListCollectionAgenciesResponse {
	res := make([]CollectionAgencyResponse, len(agencies))
	for i := range agencies {
		res[i] = ToCollectionAgencyResponse(&agencies[i])
	}
	return ListCollectionAgenciesResponse{Next: next, Results: res}
}
