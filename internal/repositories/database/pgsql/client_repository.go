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

// PgxClientRepository implements portsrepo.ClientRepositoryFacade using pgx.
type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) *PgxClientRepository {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

// clientWithAgencySelect joins every client to its agency.
const clientWithAgencySelect = `
	SELECT c.id, c.name, c.collection_agency_id, c.created_at, c.updated_at,
	       ag.id, ag.name, ag.contact_info, ag.created_at, ag.updated_at
	FROM clients c
	JOIN collection_agencies ag ON ag.id = c.collection_agency_id`

func scanClientWithAgency(row pgx.Row) (domain.Client, error) {
	var c models.Client
	var ag models.CollectionAgency
	err := row.Scan(
		&c.ID, &c.Name, &c.CollectionAgencyID, &c.CreatedAt, &c.UpdatedAt,
		&ag.ID, &ag.Name, &ag.ContactInfo, &ag.CreatedAt, &ag.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, err
	}
	client := mapping.ToDomainClient(c)
	agency := mapping.ToDomainCollectionAgency(ag)
	client.CollectionAgency = &agency
	return client, nil
}

// FindClientByID retrieves a client, with its agency, by ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	client, err := scanClientWithAgency(r.Pool.QueryRow(ctx, clientWithAgencySelect+` WHERE c.id = $1;`, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %d: %w", clientID, err)
	}
	return &client, nil
}

// ListClients retrieves a page of clients ordered by creation time.
func (r *PgxClientRepository) ListClients(ctx context.Context, limit int, cursor *string) ([]domain.Client, *string, error) {
	pos, err := decodeCursor(cursor)
	if err != nil {
		return nil, nil, err
	}

	query := clientWithAgencySelect
	args := []any{}
	if pos != nil {
		query += ` WHERE (c.created_at, c.id) > ($1, $2)`
		args = append(args, pos.CreatedAt, pos.ID)
	}
	query += fmt.Sprintf(` ORDER BY c.created_at, c.id LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query clients", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		client, err := scanClientWithAgency(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan client row", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating client rows", err)
	}

	page, next := trimPage(clients, limit, func(c domain.Client) (time.Time, int64) {
		return c.CreatedAt, c.ID
	})
	return page, next, nil
}

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client *domain.Client) error {
	m := mapping.ToModelClient(*client)
	query := `
		INSERT INTO clients (name, collection_agency_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at;
	`
	if err := r.Pool.QueryRow(ctx, query, m.Name, m.CollectionAgencyID).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt); err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("%w: collection agency %d does not exist", apperrors.ErrValidation, m.CollectionAgencyID)
		}
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// UpdateClient updates a client's name and agency.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client *domain.Client) error {
	m := mapping.ToModelClient(*client)
	query := `
		UPDATE clients SET name = $1, collection_agency_id = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at;
	`
	if err := r.Pool.QueryRow(ctx, query, m.Name, m.CollectionAgencyID, m.ID).Scan(&client.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("%w: collection agency %d does not exist", apperrors.ErrValidation, m.CollectionAgencyID)
		}
		return fmt.Errorf("failed to update client %d: %w", m.ID, err)
	}
	return nil
}

// DeleteClient removes a client; its accounts cascade.
func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %d: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
