package movements

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns one page of movements, newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]ListItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.concept, m.amount, m.date, m.type, u.name
		FROM movements m
		LEFT JOIN users u ON u.id = m.user_id
		ORDER BY m.date DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListItem
	for rows.Next() {
		var item ListItem
		if err := rows.Scan(&item.ID, &item.Concept, &item.Amount, &item.Date, &item.Type, &item.UserName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the total number of movements.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movements`).Scan(&total)
	return total, err
}

// Summarize aggregates incomes and expenses over all movements.
func (r *Repository) Summarize(ctx context.Context) (Summary, error) {
	var s Summary
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0)
		FROM movements`).Scan(&s.TotalIncomes, &s.TotalExpenses)
	if err != nil {
		return Summary{}, err
	}
	s.Balance = s.TotalIncomes - s.TotalExpenses
	return s, nil
}

// Create inserts a movement and returns it joined with the creator
// name.
func (r *Repository) Create(ctx context.Context, m Movement) (ListItem, error) {
	var item ListItem
	err := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO movements (id, concept, amount, date, type, user_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, concept, amount, date, type, user_id
		)
		SELECT i.id, i.concept, i.amount, i.date, i.type, u.name
		FROM inserted i
		LEFT JOIN users u ON u.id = i.user_id`,
		m.ID, m.Concept, m.Amount, m.Date, m.Type, m.UserID, m.CreatedAt,
	).Scan(&item.ID, &item.Concept, &item.Amount, &item.Date, &item.Type, &item.UserName)
	if err != nil {
		return ListItem{}, err
	}
	return item, nil
}
