package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"campusbooking/internal/booking"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Bookings returns the bookings matching f, newest first, with item and user names.
func (r *Repository) Bookings(ctx context.Context, f BookingFilter) ([]booking.QueueItem, error) {
	const q = `
SELECT b.id, b.item_type, b.item_id, b.user_id, b.start_time, b.end_time, b.status, b.notes, b.created_at, b.updated_at,
       COALESCE(rm.name, eq.name, '') AS item_name,
       COALESCE(NULLIF(p.full_name, ''), NULLIF(p.email, ''), 'Unknown user') AS user_name
FROM bookings b
LEFT JOIN rooms rm ON b.item_type = 'room' AND rm.id = b.item_id
LEFT JOIN equipment eq ON b.item_type = 'equipment' AND eq.id = b.item_id
LEFT JOIN profiles p ON p.id = b.user_id
WHERE ($1::timestamptz IS NULL OR b.start_time >= $1::timestamptz)
  AND ($2::timestamptz IS NULL OR b.end_time <= $2::timestamptz)
  AND ($3::text IS NULL OR b.item_type = $3::text)
  AND ($4::text = '' OR b.item_id = NULLIF($4::text, '')::uuid)
  AND ($5::text IS NULL OR b.status = $5::text)
ORDER BY b.created_at DESC
`
	var itemType, status *string
	if f.ItemType != nil {
		s := string(*f.ItemType)
		itemType = &s
	}
	if f.Status != nil {
		s := string(*f.Status)
		status = &s
	}

	rows, err := r.db.Query(ctx, q, f.From, f.To, itemType, f.ItemID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []booking.QueueItem{}
	for rows.Next() {
		var it booking.QueueItem
		if err := rows.Scan(
			&it.ID, &it.ItemType, &it.ItemID, &it.UserID, &it.Start, &it.End, &it.Status, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
			&it.ItemName, &it.UserName,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
