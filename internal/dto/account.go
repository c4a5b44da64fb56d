package dto

import (
	"time"

	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	ClientReferenceNo string               `json:"client_reference_no" binding:"required,max=255"`
	Balance           *decimal.Decimal     `json:"balance" binding:"required"`
	Status            domain.AccountStatus `json:"status" binding:"omitempty,oneof=IN_COLLECTION PAID_IN_FULL INACTIVE"`
	ClientID          int64                `json:"client_id" binding:"required,gt=0"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Balance  *decimal.Decimal      `json:"balance"`
	Status   *domain.AccountStatus `json:"status" binding:"omitempty,oneof=IN_COLLECTION PAID_IN_FULL INACTIVE"`
	ClientID *int64                `json:"client_id" binding:"omitempty,gt=0"`
}

// LinkConsumerRequest links an existing consumer to an account.
type LinkConsumerRequest struct {
	ConsumerID int64 `json:"consumer_id" binding:"required,gt=0"`
}

// ListAccountsParams defines query parameters for listing accounts.
// Balances are kept as strings so that malformed numbers can be reported precisely.
type ListAccountsParams struct {
	Cursor       string `form:"cursor"`
	MinBalance   string `form:"min_balance"`
	MaxBalance   string `form:"max_balance"`
	Status       string `form:"status"`
	ConsumerName string `form:"consumer_name"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID                int64                `json:"id"`
	ClientReferenceNo string               `json:"client_reference_no"`
	Balance           string               `json:"balance"`
	Status            domain.AccountStatus `json:"status"`
	Client            *ClientResponse      `json:"client"`
	Consumers         []ConsumerResponse   `json:"consumers"`
	CreatedAt         time.Time            `json:"created_at"`
}

// ListAccountsResponse is one cursor page of accounts.
type ListAccountsResponse struct {
	Next    *string           `json:"next"`
	Results []AccountResponse `json:"results"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	res := AccountResponse{
		ID:                acc.ID,
		ClientReferenceNo: acc.ClientReferenceNo,
		Balance:           acc.Balance.StringFixed(domain.BalanceDecimalPlaces),
		Status:            acc.Status,
		Consumers:         ToConsumerResponses(acc.Consumers),
		CreatedAt:         acc.CreatedAt,
	}
	if acc.Client != nil {
		client := ToClientResponse(acc.Client)
		res.Client = &client
	}
	return res
}

// ToListAccountsResponse converts a page of accounts to its DTO
func ToListAccountsResponse(accounts []domain.Account, next *string) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i]) // Reuse the single converter
	}
	return ListAccountsResponse{Next: next, Results: res}
}
