package repositories

import (
	"context"

	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data.
// Returned accounts carry their Client (with its agency) and linked Consumers.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its ID.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts matching filter, ordered by creation time.
	// It returns the accounts, a cursor for the next page (nil on the last page), and an error.
	ListAccounts(ctx context.Context, filter domain.AccountFilter, limit int, cursor *string) ([]domain.Account, *string, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts a new account and fills in its ID and timestamps.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// UpdateAccount updates balance, status and client of an existing account.
	UpdateAccount(ctx context.Context, account *domain.Account) error

	// DeleteAccount removes an account and its consumer links.
	DeleteAccount(ctx context.Context, accountID int64) error
}

// AccountConsumerLinker defines operations on the account/consumer association.
type AccountConsumerLinker interface {
	// LinkConsumer associates a consumer with an account. It reports whether a new link was created.
	LinkConsumer(ctx context.Context, accountID, consumerID int64) (bool, error)

	// UnlinkConsumer removes the association, returning ErrNotFound if it does not exist.
	UnlinkConsumer(ctx context.Context, accountID, consumerID int64) error
}

// AccountImportSupport defines the transactional operations used by the CSV importer.
type AccountImportSupport interface {
	// UpsertAccountByReferenceInTx creates the account or, when its client_reference_no
	// already exists, overwrites balance, status and client. It fills in the ID and
	// timestamps and reports whether the row was created.
	UpsertAccountByReferenceInTx(ctx context.Context, tx pgx.Tx, account *domain.Account) (bool, error)

	// LinkConsumerInTx associates a consumer with an account within tx.
	// It reports whether a new link was created.
	LinkConsumerInTx(ctx context.Context, tx pgx.Tx, accountID, consumerID int64) (bool, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountConsumerLinker
	AccountImportSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}

// AccountImportRepositoryWithTx is the part of account storage used by the CSV importer.
type AccountImportRepositoryWithTx interface {
	AccountImportSupport
	TransactionManager
}
