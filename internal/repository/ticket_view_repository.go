package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/support-kit/analytics-service/internal/domain"
)

// TicketViewRepository persists the denormalized ticket view.
type TicketViewRepository interface {
	ReplaceAll(ctx context.Context, tickets []domain.Ticket) error
	FindByCreatedDateBetween(ctx context.Context, from, to time.Time, newestFirst bool) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	Search(ctx context.Context, search string) ([]domain.Ticket, error)
}

type ticketViewRepository struct {
	pool *pgxpool.Pool
}

// NewTicketViewRepository instantiates the repository.
func NewTicketViewRepository(pool *pgxpool.Pool) TicketViewRepository {
	return &ticketViewRepository{pool: pool}
}

// ReplaceAll clears the collection and bulk-inserts the new epoch's rows in
// one transaction, so readers never see a half-written ticket view.
func (r *ticketViewRepository) ReplaceAll(ctx context.Context, tickets []domain.Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM tickets`); err != nil {
		return err
	}

	rows := make([][]any, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []any{
			t.ID, t.SourceID, t.CreatedDate, t.UpdatedDate, t.Status,
			t.Channel, t.Name, t.Email, t.Subject, t.Message, t.Tags,
		})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"tickets"},
		[]string{"id", "source_id", "created_date", "updated_date", "status",
			"channel", "name", "email", "subject", "message", "tags"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ticketViewRepository) FindByCreatedDateBetween(ctx context.Context, from, to time.Time, newestFirst bool) ([]domain.Ticket, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}
	query := `
        SELECT id, source_id, created_date, updated_date, status, channel,
               name, email, subject, message, tags, 0
        FROM tickets
        WHERE created_date >= $1 AND created_date < $2
        ORDER BY created_date ` + order
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketViewRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE status=$1`, status).Scan(&count)
	return count, err
}

func (r *ticketViewRepository) Search(ctx context.Context, search string) ([]domain.Ticket, error) {
	tsquery := buildAnyTermQuery(search)
	if tsquery == "" {
		return nil, nil
	}
	const query = `
        SELECT id, source_id, created_date, updated_date, status, channel,
               name, email, subject, message, tags,
               ts_rank(search_vector, to_tsquery('simple', $1)) AS score
        FROM tickets
        WHERE search_vector @@ to_tsquery('simple', $1)
        ORDER BY score DESC, created_date DESC`
	rows, err := r.pool.Query(ctx, query, tsquery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(
			&t.ID, &t.SourceID, &t.CreatedDate, &t.UpdatedDate, &t.Status,
			&t.Channel, &t.Name, &t.Email, &t.Subject, &t.Message, &t.Tags,
			&t.Score,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
