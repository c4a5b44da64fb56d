package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	portsrepo "github.com/SscSPs/collections_app/internal/core/ports/repositories"
	"github.com/SscSPs/collections_app/internal/models"
	"github.com/SscSPs/collections_app/internal/utils/mapping"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccountRepository implements portsrepo.AccountRepositoryWithTx using pgx.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// accountSelectColumns reads an account together with its client and agency.
var accountSelectColumns = []string{
	"a.id", "a.client_reference_no", "a.balance", "a.status", "a.client_id", "a.created_at", "a.updated_at",
	"c.id", "c.name", "c.collection_agency_id", "c.created_at", "c.updated_at",
	"ag.id", "ag.name", "ag.contact_info", "ag.created_at", "ag.updated_at",
}

func newAccountSelect() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(accountSelectColumns...)
	sb.From("accounts a")
	sb.Join("clients c", "c.id = a.client_id")
	sb.Join("collection_agencies ag", "ag.id = c.collection_agency_id")
	return sb
}

// escapeLike escapes the LIKE metacharacters of a user supplied value.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// buildAccountListQuery renders the filtered, cursor-paginated account listing.
// All predicates are combined with AND; the consumer name predicate is an EXISTS
// so an account linked to several matching consumers is returned once.
func buildAccountListQuery(filter domain.AccountFilter, limit int, pos *cursorPosition) (string, []any) {
	sb := newAccountSelect()

	var where []string
	if !filter.IsEmpty() {
		where = append(where, accountFilterPredicates(sb, filter)...)
	}
	if pos != nil {
		where = append(where, fmt.Sprintf("(a.created_at, a.id) > (%s, %s)", sb.Var(pos.CreatedAt), sb.Var(pos.ID)))
	}
	if len(where) > 0 {
		sb.Where(where...)
	}

	sb.OrderBy("a.created_at ASC", "a.id ASC")
	sb.Limit(limit)
	return sb.Build()
}

// accountFilterPredicates renders the set predicates of filter against sb.
func accountFilterPredicates(sb *sqlbuilder.SelectBuilder, filter domain.AccountFilter) []string {
	var where []string
	if filter.MinBalance != nil {
		where = append(where, sb.GreaterEqualThan("a.balance", *filter.MinBalance))
	}
	if filter.MaxBalance != nil {
		where = append(where, sb.LessEqualThan("a.balance", *filter.MaxBalance))
	}
	if filter.Status != nil {
		where = append(where, sb.Equal("a.status", string(*filter.Status)))
	}
	if filter.ConsumerName != "" {
		pattern := "%" + escapeLike(filter.ConsumerName) + "%"
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM account_consumers ac JOIN consumers co ON co.id = ac.consumer_id WHERE ac.account_id = a.id AND co.name ILIKE %s)",
			sb.Var(pattern)))
	}
	return where
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a models.Account
	var c models.Client
	var ag models.CollectionAgency
	err := row.Scan(
		&a.ID, &a.ClientReferenceNo, &a.Balance, &a.Status, &a.ClientID, &a.CreatedAt, &a.UpdatedAt,
		&c.ID, &c.Name, &c.CollectionAgencyID, &c.CreatedAt, &c.UpdatedAt,
		&ag.ID, &ag.Name, &ag.ContactInfo, &ag.CreatedAt, &ag.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}

	account := mapping.ToDomainAccount(a)
	client := mapping.ToDomainClient(c)
	agency := mapping.ToDomainCollectionAgency(ag)
	client.CollectionAgency = &agency
	account.Client = &client
	account.Consumers = []domain.Consumer{}
	return account, nil
}

// attachConsumers loads the linked consumers of every account in one query.
func (r *PgxAccountRepository) attachConsumers(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	ids := make([]int64, len(accounts))
	byID := make(map[int64]int, len(accounts))
	for i := range accounts {
		ids[i] = accounts[i].ID
		byID[accounts[i].ID] = i
	}

	query := `
		SELECT ac.account_id, co.id, co.name, co.address, co.ssn, co.created_at, co.updated_at
		FROM account_consumers ac
		JOIN consumers co ON co.id = ac.consumer_id
		WHERE ac.account_id = ANY($1)
		ORDER BY ac.id;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to query account consumers", err)
	}
	defer rows.Close()

	for rows.Next() {
		var accountID int64
		var m models.Consumer
		if err := rows.Scan(&accountID, &m.ID, &m.Name, &m.Address, &m.SSN, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to scan account consumer row", err)
		}
		i := byID[accountID]
		accounts[i].Consumers = append(accounts[i].Consumers, mapping.ToDomainConsumer(m))
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "error iterating account consumer rows", err)
	}
	return nil
}

// FindAccountByID retrieves an account with its client, agency and consumers.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	sb := newAccountSelect()
	sb.Where(sb.Equal("a.id", accountID))
	query, args := sb.Build()

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %d: %w", accountID, err)
	}

	accounts := []domain.Account{account}
	if err := r.attachConsumers(ctx, accounts); err != nil {
		return nil, err
	}
	return &accounts[0], nil
}

// ListAccounts retrieves a page of accounts matching filter.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter, limit int, cursor *string) ([]domain.Account, *string, error) {
	pos, err := decodeCursor(cursor)
	if err != nil {
		return nil, nil, err
	}

	// Fetch one extra row to learn whether another page follows.
	query, args := buildAccountListQuery(filter, limit+1, pos)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, limit+1)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan account row", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating account rows", err)
	}
	rows.Close()

	page, next := trimPage(accounts, limit, func(a domain.Account) (time.Time, int64) {
		return a.CreatedAt, a.ID
	})
	if err := r.attachConsumers(ctx, page); err != nil {
		return nil, nil, err
	}
	return page, next, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	m := mapping.ToModelAccount(*account)
	query := `
		INSERT INTO accounts (client_reference_no, balance, status, client_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at;
	`
	err := r.Pool.QueryRow(ctx, query, m.ClientReferenceNo, m.Balance, m.Status, m.ClientID).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return fmt.Errorf("%w: account with client reference no %s already exists", apperrors.ErrDuplicate, m.ClientReferenceNo)
		}
		return fmt.Errorf("failed to save account %s: %w", m.ClientReferenceNo, err)
	}
	return nil
}

// UpdateAccount updates balance, status and client of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	m := mapping.ToModelAccount(*account)
	query := `
		UPDATE accounts SET balance = $1, status = $2, client_id = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at;
	`
	if err := r.Pool.QueryRow(ctx, query, m.Balance, m.Status, m.ClientID, m.ID).Scan(&account.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update account %d: %w", m.ID, err)
	}
	return nil
}

// DeleteAccount removes an account; its consumer links cascade.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// linkConsumer inserts the (account, consumer) pair. It returns nil when the pair already exists.
func linkConsumer(ctx context.Context, q dbtx, accountID, consumerID int64) (*domain.AccountConsumer, error) {
	query := `
		INSERT INTO account_consumers (account_id, consumer_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (account_id, consumer_id) DO NOTHING
		RETURNING id, account_id, consumer_id, created_at;
	`
	var m models.AccountConsumer
	err := q.QueryRow(ctx, query, accountID, consumerID).Scan(&m.ID, &m.AccountID, &m.ConsumerID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isPgError(err, pgForeignKeyViolation) {
			return nil, fmt.Errorf("%w: account %d or consumer %d does not exist", apperrors.ErrNotFound, accountID, consumerID)
		}
		return nil, fmt.Errorf("failed to link consumer %d to account %d: %w", consumerID, accountID, err)
	}
	link := mapping.ToDomainAccountConsumer(m)
	return &link, nil
}

// LinkConsumer associates a consumer with an account if not already linked.
func (r *PgxAccountRepository) LinkConsumer(ctx context.Context, accountID, consumerID int64) (bool, error) {
	link, err := linkConsumer(ctx, r.Pool, accountID, consumerID)
	return link != nil, err
}

// UnlinkConsumer removes the association between an account and a consumer.
func (r *PgxAccountRepository) UnlinkConsumer(ctx context.Context, accountID, consumerID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM account_consumers WHERE account_id = $1 AND consumer_id = $2;`, accountID, consumerID)
	if err != nil {
		return fmt.Errorf("failed to unlink consumer %d from account %d: %w", consumerID, accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpsertAccountByReferenceInTx inserts the account or overwrites balance, status
// and client of the account with the same client reference number.
func (r *PgxAccountRepository) UpsertAccountByReferenceInTx(ctx context.Context, tx pgx.Tx, account *domain.Account) (bool, error) {
	m := mapping.ToModelAccount(*account)
	// xmax is zero only for a freshly inserted row version.
	query := `
		INSERT INTO accounts (client_reference_no, balance, status, client_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (client_reference_no) DO UPDATE
		SET balance = EXCLUDED.balance,
		    status = EXCLUDED.status,
		    client_id = EXCLUDED.client_id,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted;
	`
	var inserted bool
	err := tx.QueryRow(ctx, query, m.ClientReferenceNo, m.Balance, m.Status, m.ClientID).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert account %s: %w", m.ClientReferenceNo, err)
	}
	return inserted, nil
}

// LinkConsumerInTx associates a consumer with an account within tx.
func (r *PgxAccountRepository) LinkConsumerInTx(ctx context.Context, tx pgx.Tx, accountID, consumerID int64) (bool, error) {
	link, err := linkConsumer(ctx, tx, accountID, consumerID)
	return link != nil, err
}
