package mapping

import (
	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ID:                 d.ID,
		Name:               d.Name,
		CollectionAgencyID: d.CollectionAgencyID,
		Timestamps:         ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ID:                 m.ID,
		Name:               m.Name,
		CollectionAgencyID: m.CollectionAgencyID,
		Timestamps:         ToDomainTimestamps(m.Timestamps),
	}
}

// ToModelCollectionAgency converts a domain CollectionAgency to a model CollectionAgency
func ToModelCollectionAgency(d domain.CollectionAgency) models.CollectionAgency {
	return models.CollectionAgency{
		ID:          d.ID,
		Name:        d.Name,
		ContactInfo: d.ContactInfo,
		Timestamps:  ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainCollectionAgency converts a model CollectionAgency to a domain CollectionAgency
func ToDomainCollectionAgency(m models.CollectionAgency) domain.CollectionAgency {
	return domain.CollectionAgency{
		ID:          m.ID,
		Name:        m.Name,
		ContactInfo: m.ContactInfo,
		Timestamps:  ToDomainTimestamps(m.Timestamps),
	}
}
