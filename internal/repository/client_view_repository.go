package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/support-kit/analytics-service/internal/domain"
)

// ClientViewRepository persists the client view.
type ClientViewRepository interface {
	ReplaceAll(ctx context.Context, clients []domain.Client) error
	List(ctx context.Context, limit, offset int) ([]domain.Client, error)
	Search(ctx context.Context, search string, limit, offset int) ([]domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
}

type clientViewRepository struct {
	pool *pgxpool.Pool
}

// NewClientViewRepository instantiates the repository.
func NewClientViewRepository(pool *pgxpool.Pool) ClientViewRepository {
	return &clientViewRepository{pool: pool}
}

// ReplaceAll clears the collection and bulk-inserts the new epoch's rows in
// one transaction.
func (r *clientViewRepository) ReplaceAll(ctx context.Context, clients []domain.Client) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM clients`); err != nil {
		return err
	}

	rows := make([][]any, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []any{c.ID, c.Name, c.Email, c.Status, c.Tags})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"clients"},
		[]string{"id", "name", "email", "status", "tags"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *clientViewRepository) List(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	const query = `
        SELECT id, name, email, status, tags, 0
        FROM clients
        ORDER BY name
        LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

func (r *clientViewRepository) Search(ctx context.Context, search string, limit, offset int) ([]domain.Client, error) {
	tsquery := buildAnyTermQuery(search)
	if tsquery == "" {
		return r.List(ctx, limit, offset)
	}
	const query = `
        SELECT id, name, email, status, tags,
               ts_rank(search_vector, to_tsquery('simple', $1)) AS score
        FROM clients
        WHERE search_vector @@ to_tsquery('simple', $1)
        ORDER BY score DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, tsquery, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

func (r *clientViewRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const query = `SELECT id, name, email, status, tags, 0 FROM clients WHERE id=$1`
	var c domain.Client
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Status, &c.Tags, &c.Score,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanClients(rows pgx.Rows) ([]domain.Client, error) {
	var result []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Status, &c.Tags, &c.Score); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
