package mapping

import (
	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/models"
)

// ToModelConsumer converts a domain Consumer to a model Consumer
func ToModelConsumer(d domain.Consumer) models.Consumer {
	return models.Consumer{
		ID:         d.ID,
		Name:       d.Name,
		Address:    d.Address,
		SSN:        d.SSN,
		Timestamps: ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainConsumer converts a model Consumer to a domain Consumer
func ToDomainConsumer(m models.Consumer) domain.Consumer {
	return domain.Consumer{
		ID:         m.ID,
		Name:       m.Name,
		Address:    m.Address,
		SSN:        m.SSN,
		Timestamps: ToDomainTimestamps(m.Timestamps),
	}
}
