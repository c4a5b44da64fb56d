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

// PgxCollectionAgencyRepository implements portsrepo.CollectionAgencyRepositoryFacade using pgx.
type PgxCollectionAgencyRepository struct {
	BaseRepository
}

func newPgxCollectionAgencyRepository(pool *pgxpool.Pool) *PgxCollectionAgencyRepository {
	return &PgxCollectionAgencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CollectionAgencyRepositoryFacade = (*PgxCollectionAgencyRepository)(nil)

const agencyColumns = `id, name, contact_info, created_at, updated_at`

func scanAgency(row pgx.Row) (models.CollectionAgency, error) {
	var m models.CollectionAgency
	err := row.Scan(&m.ID, &m.Name, &m.ContactInfo, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// FindCollectionAgencyByID retrieves an agency by its ID.
func (r *PgxCollectionAgencyRepository) FindCollectionAgencyByID(ctx context.Context, agencyID int64) (*domain.CollectionAgency, error) {
	query := `SELECT ` + agencyColumns + ` FROM collection_agencies WHERE id = $1;`

	m, err := scanAgency(r.Pool.QueryRow(ctx, query, agencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find collection agency %d: %w", agencyID, err)
	}
	agency := mapping.ToDomainCollectionAgency(m)
	return &agency, nil
}

// ListCollectionAgencies retrieves a page of agencies ordered by creation time.
func (r *PgxCollectionAgencyRepository) ListCollectionAgencies(ctx context.Context, limit int, cursor *string) ([]domain.CollectionAgency, *string, error) {
	pos, err := decodeCursor(cursor)
	if err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + agencyColumns + ` FROM collection_agencies`
	args := []any{}
	if pos != nil {
		query += ` WHERE (created_at, id) > ($1, $2)`
		args = append(args, pos.CreatedAt, pos.ID)
	}
	query += fmt.Sprintf(` ORDER BY created_at, id LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query collection agencies", err)
	}
	defer rows.Close()

	var agencies []domain.CollectionAgency
	for rows.Next() {
		m, err := scanAgency(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan collection agency row", err)
		}
		agencies = append(agencies, mapping.ToDomainCollectionAgency(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating collection agency rows", err)
	}

	page, next := trimPage(agencies, limit, func(a domain.CollectionAgency) (time.Time, int64) {
		return a.CreatedAt, a.ID
	})
	return page, next, nil
}

// SaveCollectionAgency inserts a new agency.
func (r *PgxCollectionAgencyRepository) SaveCollectionAgency(ctx context.Context, agency *domain.CollectionAgency) error {
	m := mapping.ToModelCollectionAgency(*agency)
	query := `
		INSERT INTO collection_agencies (name, contact_info, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at;
	`
	if err := r.Pool.QueryRow(ctx, query, m.Name, m.ContactInfo).Scan(&agency.ID, &agency.CreatedAt, &agency.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save collection agency: %w", err)
	}
	return nil
}

// UpdateCollectionAgency updates an agency's name and contact information.
func (r *PgxCollectionAgencyRepository) UpdateCollectionAgency(ctx context.Context, agency *domain.CollectionAgency) error {
	m := mapping.ToModelCollectionAgency(*agency)
	query := `
		UPDATE collection_agencies SET name = $1, contact_info = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at;
	`
	if err := r.Pool.QueryRow(ctx, query, m.Name, m.ContactInfo, m.ID).Scan(&agency.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update collection agency %d: %w", m.ID, err)
	}
	return nil
}

// DeleteCollectionAgency removes an agency; clients and their accounts cascade.
func (r *PgxCollectionAgencyRepository) DeleteCollectionAgency(ctx context.Context, agencyID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM collection_agencies WHERE id = $1;`, agencyID)
	if err != nil {
		return fmt.Errorf("failed to delete collection agency %d: %w", agencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
