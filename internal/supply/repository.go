package supply

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListCreatedBetween returns supplies created in [from, to], newest first. Nil bounds are open.
func (r *Repository) ListCreatedBetween(ctx context.Context, from, to *time.Time) ([]Supply, error) {
	const q = `
SELECT id, name, description, quantity::text, unit, min_quantity::text, created_at
FROM supplies
WHERE ($1::timestamptz IS NULL OR created_at >= $1::timestamptz)
  AND ($2::timestamptz IS NULL OR created_at <= $2::timestamptz)
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Supply{}
	for rows.Next() {
		var s Supply
		var qty string
		var minQty *string
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &qty, &s.Unit, &minQty, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := parseQuantities(&s, qty, minQty); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
