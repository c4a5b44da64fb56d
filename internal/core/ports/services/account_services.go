package services

import (
	"context"

	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account with its client and consumers.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves one cursor page of accounts matching filter.
	ListAccounts(ctx context.Context, filter domain.AccountFilter, cursor *string) ([]domain.Account, *string, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account for an existing client.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an existing account's balance, status or client.
	UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account and its consumer links.
	DeleteAccount(ctx context.Context, accountID int64) error
}

// AccountConsumerSvc defines operations on the accounts' consumer links
type AccountConsumerSvc interface {
	// LinkConsumer links an existing consumer to an account. It reports whether
	// the link was newly created and returns the refreshed account.
	LinkConsumer(ctx context.Context, accountID, consumerID int64) (*domain.Account, bool, error)

	// UnlinkConsumer removes the link between an account and a consumer.
	UnlinkConsumer(ctx context.Context, accountID, consumerID int64) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountConsumerSvc
}
