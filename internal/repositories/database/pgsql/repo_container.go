package pgsql

import (
	portsrepo "github.com/SscSPs/collections_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CollectionAgencyRepo: newPgxCollectionAgencyRepository(dbPool),
		ClientRepo:           newPgxClientRepository(dbPool),
		ConsumerRepo:         newPgxConsumerRepository(dbPool),
		AccountRepo:          newPgxAccountRepository(dbPool),
	}
}
