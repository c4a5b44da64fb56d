package mapping

import (
	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:                d.ID,
		ClientReferenceNo: d.ClientReferenceNo,
		Balance:           d.Balance,
		Status:            models.AccountStatus(d.Status),
		ClientID:          d.ClientID,
		Timestamps:        ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:                m.ID,
		ClientReferenceNo: m.ClientReferenceNo,
		Balance:           m.Balance,
		Status:            domain.AccountStatus(m.Status),
		ClientID:          m.ClientID,
		Timestamps:        ToDomainTimestamps(m.Timestamps),
	}
}

// ToDomainAccountConsumer converts an account_consumers row to a domain AccountConsumer
func ToDomainAccountConsumer(m models.AccountConsumer) domain.AccountConsumer {
	return domain.AccountConsumer{
		ID:         m.ID,
		AccountID:  m.AccountID,
		ConsumerID: m.ConsumerID,
		CreatedAt:  m.CreatedAt,
	}
}
