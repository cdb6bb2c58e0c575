package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/fintrack/internal/movements"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Summarize aggregates incomes and expenses over all movements.
func (r *Repository) Summarize(ctx context.Context) (movements.Summary, error) {
	var s movements.Summary
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0)
		FROM movements`).Scan(&s.TotalIncomes, &s.TotalExpenses)
	if err != nil {
		return movements.Summary{}, err
	}
	s.Balance = s.TotalIncomes - s.TotalExpenses
	return s, nil
}

// AmountsSince returns per-movement day amounts on or after the cutoff.
func (r *Repository) AmountsSince(ctx context.Context, since time.Time) ([]DayAmount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date AT TIME ZONE 'UTC', 'YYYY-MM-DD'), type, amount
		FROM movements
		WHERE date >= $1
		ORDER BY date ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DayAmount
	for rows.Next() {
		var d DayAmount
		if err := rows.Scan(&d.Date, &d.Type, &d.Amount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
