package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/support-kit/analytics-service/internal/domain"
)

// ActivityViewRepository persists the per-client activity view.
type ActivityViewRepository interface {
	ReplaceAll(ctx context.Context, activities []domain.Activity) error
	ListByClient(ctx context.Context, clientID string) ([]domain.Activity, error)
}

type activityViewRepository struct {
	pool *pgxpool.Pool
}

// NewActivityViewRepository instantiates the repository.
func NewActivityViewRepository(pool *pgxpool.Pool) ActivityViewRepository {
	return &activityViewRepository{pool: pool}
}

// ReplaceAll clears the collection and bulk-inserts the new epoch's rows in
// one transaction.
func (r *activityViewRepository) ReplaceAll(ctx context.Context, activities []domain.Activity) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM activities`); err != nil {
		return err
	}

	rows := make([][]any, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, []any{a.ID, a.ClientID, string(a.Type), a.Description, a.Date, a.SourceID})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"activities"},
		[]string{"id", "client_id", "type", "description", "date", "source_id"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *activityViewRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Activity, error) {
	const query = `
        SELECT id, client_id, type, description, date, source_id
        FROM activities
        WHERE client_id=$1
        ORDER BY date`
	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.ClientID, &a.Type, &a.Description, &a.Date, &a.SourceID); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
