package domain

import (
	"github.com/shopspring/decimal"
)

// AccountStatus is the collection status of an account.
type AccountStatus string

const (
	StatusInCollection AccountStatus = "IN_COLLECTION"
	StatusPaidInFull   AccountStatus = "PAID_IN_FULL"
	StatusInactive     AccountStatus = "INACTIVE"
)

// AccountStatuses lists every valid status in display order.
var AccountStatuses = []AccountStatus{StatusInCollection, StatusPaidInFull, StatusInactive}

// IsValid reports whether s is one of the known statuses.
func (s AccountStatus) IsValid() bool {
	switch s {
	case StatusInCollection, StatusPaidInFull, StatusInactive:
		return true
	}
	return false
}

// Balance precision as stored: NUMERIC(12,2).
const (
	BalanceMaxDigits     = 12
	BalanceDecimalPlaces = 2
)

// Account is a debt record placed by a client.
type Account struct {
	ID                int64           `json:"id"`
	ClientReferenceNo string          `json:"client_reference_no"` // unique across all accounts
	Balance           decimal.Decimal `json:"balance"`             // never negative
	Status            AccountStatus   `json:"status"`
	ClientID          int64           `json:"client_id"`
	// Client and Consumers are populated by detail and list reads.
	Client    *Client    `json:"client,omitempty"`
	Consumers []Consumer `json:"consumers,omitempty"`
	Timestamps
}

// BalanceFits reports whether b can be stored without overflowing NUMERIC(12,2)
// once rounded to two decimal places.
func BalanceFits(b decimal.Decimal) bool {
	limit := decimal.New(1, BalanceMaxDigits-BalanceDecimalPlaces)
	return b.RoundBank(BalanceDecimalPlaces).Abs().LessThan(limit)
}
