package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campusbooking/internal/events"
	"campusbooking/pkg/db"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const bookingColumns = `id, item_type, item_id, user_id, start_time, end_time, status, notes, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.ItemType, &b.ItemID, &b.UserID, &b.Start, &b.End, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) ListApproved(ctx context.Context, itemType ItemType, itemID string) ([]Booking, error) {
	return listApproved(ctx, r.db, itemType, itemID, "")
}

func listApproved(ctx context.Context, q querier, itemType ItemType, itemID, excludeID string) ([]Booking, error) {
	const sql = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE item_type = $1 AND item_id = $2::uuid AND status = 'approved'
  AND ($3 = '' OR id <> NULLIF($3, '')::uuid)
ORDER BY start_time ASC
`
	rows, err := q.Query(ctx, sql, string(itemType), itemID, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// ListApprovedAll returns every approved booking, optionally restricted to one item type.
// The availability resolver labels whole catalogs from it.
func (r *Repository) ListApprovedAll(ctx context.Context, itemType *ItemType) ([]Booking, error) {
	const q = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE status = 'approved' AND ($1::text IS NULL OR item_type = $1::text)
ORDER BY start_time ASC
`
	var t *string
	if itemType != nil {
		s := string(*itemType)
		t = &s
	}
	rows, err := r.db.Query(ctx, q, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Repository) Insert(ctx context.Context, b Booking, actor string) (*Booking, error) {
	const q = `
INSERT INTO bookings (item_type, item_id, user_id, start_time, end_time, status, notes)
SELECT $1::text, $2::uuid, $3::uuid, $4, $5, 'pending', $6
WHERE EXISTS (SELECT 1 FROM rooms WHERE $1::text = 'room' AND id = $2::uuid)
   OR EXISTS (SELECT 1 FROM equipment WHERE $1::text = 'equipment' AND id = $2::uuid)
RETURNING ` + bookingColumns

	var created *Booking
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		created, err = scanBooking(tx.QueryRow(ctx, q, string(b.ItemType), b.ItemID, b.UserID, b.Start, b.End, b.Notes))
		if err != nil {
			return err
		}
		return events.Insert(ctx, tx, created.ID, events.TypeSubmitted, "Booking requested", actor, created.CreatedAt,
			map[string]any{"startTime": created.Start, "endTime": created.End})
	})
	if err != nil {
		return nil, insertError(err)
	}
	return created, nil
}

func insertError(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows), db.IsForeignKeyViolation(err):
		return ErrNotFound
	case db.IsCheckViolation(err):
		return ValidationError{Code: "INVALID_INTERVAL", Message: "start time must be before end time"}
	}
	return err
}

func (r *Repository) Get(ctx context.Context, id string) (*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1::uuid`
	b, err := scanBooking(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	const q = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE user_id = $1::uuid
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Repository) ListQueue(ctx context.Context, status *Status) ([]QueueItem, error) {
	const q = `
SELECT b.id, b.item_type, b.item_id, b.user_id, b.start_time, b.end_time, b.status, b.notes, b.created_at, b.updated_at,
       COALESCE(rm.name, eq.name, '') AS item_name,
       COALESCE(NULLIF(p.full_name, ''), p.email, '') AS user_name
FROM bookings b
LEFT JOIN rooms rm ON b.item_type = 'room' AND rm.id = b.item_id
LEFT JOIN equipment eq ON b.item_type = 'equipment' AND eq.id = b.item_id
LEFT JOIN profiles p ON p.id = b.user_id
WHERE ($1::text IS NULL OR b.status = $1::text)
ORDER BY b.created_at ASC
`
	var st *string
	if status != nil {
		s := string(*status)
		st = &s
	}
	rows, err := r.db.Query(ctx, q, st)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []QueueItem{}
	for rows.Next() {
		var it QueueItem
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

func (r *Repository) Transition(ctx context.Context, id string, next Status, actor string, at time.Time, check func(cur Booking, approved []Booking) error) (*Booking, error) {
	var updated *Booking
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		cur, err := getForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		// Approvals of the same item are serialized; the approved set read below is stable until commit.
		if err := db.LockKey(ctx, tx, itemLockKey(cur.ItemType, cur.ItemID)); err != nil {
			return err
		}
		approved, err := listApproved(ctx, tx, cur.ItemType, cur.ItemID, cur.ID)
		if err != nil {
			return err
		}
		if err := check(*cur, approved); err != nil {
			return err
		}

		updated, err = updateStatus(ctx, tx, cur.ID, next)
		if err != nil {
			return err
		}

		eventType, summary := events.TypeRejected, "Booking rejected"
		if next == StatusApproved {
			eventType, summary = events.TypeApproved, "Booking approved"
		}
		return events.Insert(ctx, tx, cur.ID, eventType, summary, actor, at,
			map[string]any{"from": cur.Status, "to": next})
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		case db.IsExclusionViolation(err):
			return nil, ErrConflict
		}
		return nil, err
	}
	return updated, nil
}

func (r *Repository) Events(ctx context.Context, id string) ([]events.Event, error) {
	return events.ListByBooking(ctx, r.db, id)
}

func getForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1::uuid FOR UPDATE`
	return scanBooking(tx.QueryRow(ctx, q, id))
}

func updateStatus(ctx context.Context, tx pgx.Tx, id string, next Status) (*Booking, error) {
	const q = `
UPDATE bookings
SET status = $1, updated_at = NOW()
WHERE id = $2::uuid
RETURNING ` + bookingColumns
	return scanBooking(tx.QueryRow(ctx, q, string(next), id))
}

func itemLockKey(itemType ItemType, itemID string) string {
	return fmt.Sprintf("booking:%s:%s", itemType, itemID)
}
