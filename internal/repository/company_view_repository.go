package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/support-kit/analytics-service/internal/domain"
)

// CompanyViewRepository persists the company view.
type CompanyViewRepository interface {
	ReplaceAll(ctx context.Context, companies []domain.Company) error
	List(ctx context.Context, limit, offset int) ([]domain.Company, error)
	Search(ctx context.Context, search string, limit, offset int) ([]domain.Company, error)
	GetByID(ctx context.Context, id string) (*domain.Company, error)
}

type companyViewRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyViewRepository instantiates the repository.
func NewCompanyViewRepository(pool *pgxpool.Pool) CompanyViewRepository {
	return &companyViewRepository{pool: pool}
}

// ReplaceAll clears the collection and bulk-inserts the new epoch's rows in
// one transaction.
func (r *companyViewRepository) ReplaceAll(ctx context.Context, companies []domain.Company) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM companies`); err != nil {
		return err
	}

	rows := make([][]any, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []any{c.ID, c.Name, c.Email, c.Country})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"companies"},
		[]string{"id", "name", "email", "country"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *companyViewRepository) List(ctx context.Context, limit, offset int) ([]domain.Company, error) {
	const query = `
        SELECT id, name, email, country, 0
        FROM companies
        ORDER BY name
        LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCompanies(rows)
}

func (r *companyViewRepository) Search(ctx context.Context, search string, limit, offset int) ([]domain.Company, error) {
	tsquery := buildAnyTermQuery(search)
	if tsquery == "" {
		return r.List(ctx, limit, offset)
	}
	const query = `
        SELECT id, name, email, country,
               ts_rank(search_vector, to_tsquery('simple', $1)) AS score
        FROM companies
        WHERE search_vector @@ to_tsquery('simple', $1)
        ORDER BY score DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, tsquery, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCompanies(rows)
}

func (r *companyViewRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	const query = `SELECT id, name, email, country, 0 FROM companies WHERE id=$1`
	var c domain.Company
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Country, &c.Score,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCompanies(rows pgx.Rows) ([]domain.Company, error) {
	var result []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Country, &c.Score); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
