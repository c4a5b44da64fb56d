package domain

import "github.com/shopspring/decimal"

// AccountFilter holds the optional predicates for listing accounts.
// Set predicates are combined with AND; nil or empty ones are ignored.
type AccountFilter struct {
	MinBalance   *decimal.Decimal // balance >= MinBalance
	MaxBalance   *decimal.Decimal // balance <= MaxBalance
	Status       *AccountStatus   // exact match
	ConsumerName string           // case-insensitive substring of any linked consumer's name
}

// IsEmpty reports whether no predicate is set.
func (f AccountFilter) IsEmpty() bool {
	return f.MinBalance == nil && f.MaxBalance == nil && f.Status == nil && f.ConsumerName == ""
}
