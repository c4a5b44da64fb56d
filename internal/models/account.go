package models

import (
	"github.com/shopspring/decimal"
)

// AccountStatus mirrors the CHECK constraint on accounts.status.
type AccountStatus string

// Account is a row of accounts.
type Account struct {
	ID                int64           `db:"id"`
	ClientReferenceNo string          `db:"client_reference_no"`
	Balance           decimal.Decimal `db:"balance"`
	Status            AccountStatus   `db:"status"`
	ClientID          int64           `db:"client_id"`
	Timestamps
}
