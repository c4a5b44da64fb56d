package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	portsrepo "github.com/SscSPs/collections_app/internal/core/ports/repositories"
	"github.com/SscSPs/collections_app/internal/models"
	"github.com/SscSPs/collections_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConsumerRepository implements portsrepo.ConsumerRepositoryFacade using pgx.
type PgxConsumerRepository struct {
	BaseRepository
}

func newPgxConsumerRepository(pool *pgxpool.Pool) *PgxConsumerRepository {
	return &PgxConsumerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ConsumerRepositoryFacade = (*PgxConsumerRepository)(nil)

const consumerColumns = `id, name, address, ssn, created_at, updated_at`

func scanConsumer(row pgx.Row) (models.Consumer, error) {
	var m models.Consumer
	err := row.Scan(&m.ID, &m.Name, &m.Address, &m.SSN, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func findConsumer(ctx context.Context, q dbtx, where string, arg any) (*domain.Consumer, error) {
	query := `SELECT ` + consumerColumns + ` FROM consumers WHERE ` + where + ` ORDER BY id LIMIT 1;`
	m, err := scanConsumer(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find consumer: %w", err)
	}
	consumer := mapping.ToDomainConsumer(m)
	return &consumer, nil
}

func insertConsumer(ctx context.Context, q dbtx, consumer *domain.Consumer) error {
	m := mapping.ToModelConsumer(*consumer)
	query := `
		INSERT INTO consumers (name, address, ssn, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at;
	`
	if err := q.QueryRow(ctx, query, m.Name, m.Address, m.SSN).Scan(&consumer.ID, &consumer.CreatedAt, &consumer.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save consumer: %w", err)
	}
	return nil
}

// FindConsumerByID retrieves a consumer by its ID.
func (r *PgxConsumerRepository) FindConsumerByID(ctx context.Context, consumerID int64) (*domain.Consumer, error) {
	return findConsumer(ctx, r.Pool, `id = $1`, consumerID)
}

// ListConsumers retrieves a page of consumers ordered by creation time.
func (r *PgxConsumerRepository) ListConsumers(ctx context.Context, limit int, cursor *string) ([]domain.Consumer, *string, error) {
	pos, err := decodeCursor(cursor)
	if err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + consumerColumns + ` FROM consumers`
	args := []any{}
	if pos != nil {
		query += ` WHERE (created_at, id) > ($1, $2)`
		args = append(args, pos.CreatedAt, pos.ID)
	}
	query += fmt.Sprintf(` ORDER BY created_at, id LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query consumers", err)
	}
	defer rows.Close()

	var consumers []domain.Consumer
	for rows.Next() {
		m, err := scanConsumer(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan consumer row", err)
		}
		consumers = append(consumers, mapping.ToDomainConsumer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating consumer rows", err)
	}

	page, next := trimPage(consumers, limit, func(c domain.Consumer) (time.Time, int64) {
		return c.CreatedAt, c.ID
	})
	return page, next, nil
}

// SaveConsumer inserts a new consumer.
func (r *PgxConsumerRepository) SaveConsumer(ctx context.Context, consumer *domain.Consumer) error {
	return insertConsumer(ctx, r.Pool, consumer)
}

// UpdateConsumer updates a consumer's name, address and SSN.
func (r *PgxConsumerRepository) UpdateConsumer(ctx context.Context, consumer *domain.Consumer) error {
	m := mapping.ToModelConsumer(*consumer)
	query := `
		UPDATE consumers SET name = $1, address = $2, ssn = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at;
	`
	if err := r.Pool.QueryRow(ctx, query, m.Name, m.Address, m.SSN, m.ID).Scan(&consumer.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update consumer %d: %w", m.ID, err)
	}
	return nil
}

// DeleteConsumer removes a consumer; its account links cascade.
func (r *PgxConsumerRepository) DeleteConsumer(ctx context.Context, consumerID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM consumers WHERE id = $1;`, consumerID)
	if err != nil {
		return fmt.Errorf("failed to delete consumer %d: %w", consumerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindConsumerBySSNInTx returns the oldest consumer with the given SSN.
func (r *PgxConsumerRepository) FindConsumerBySSNInTx(ctx context.Context, tx pgx.Tx, ssn string) (*domain.Consumer, error) {
	return findConsumer(ctx, tx, `ssn = $1`, ssn)
}

// SaveConsumerInTx inserts a consumer within tx.
func (r *PgxConsumerRepository) SaveConsumerInTx(ctx context.Context, tx pgx.Tx, consumer *domain.Consumer) error {
	return insertConsumer(ctx, tx, consumer)
}
