package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("profile not found")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id string) (*Profile, error) {
	const q = `
SELECT id, email, full_name, role, created_at
FROM profiles
WHERE id = $1
`
	p := &Profile{}
	var role string
	if err := r.db.QueryRow(ctx, q, id).Scan(&p.ID, &p.Email, &p.FullName, &role, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Role = ParseRole(role)
	return p, nil
}

// EnsureExists registers a first-time user as a common profile and returns the stored row.
// Existing rows keep their role and name; an empty email is filled in.
func (r *Repository) EnsureExists(ctx context.Context, id, email string) (*Profile, error) {
	const q = `
INSERT INTO profiles (id, email, role)
VALUES ($1, $2, 'common')
ON CONFLICT (id) DO UPDATE SET
  email = CASE WHEN profiles.email = '' THEN EXCLUDED.email ELSE profiles.email END
RETURNING id, email, full_name, role, created_at
`
	p := &Profile{}
	var role string
	if err := r.db.QueryRow(ctx, q, id, email).Scan(&p.ID, &p.Email, &p.FullName, &role, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Role = ParseRole(role)
	return p, nil
}

// Upsert writes a full profile. Used by the dev seeder.
func (r *Repository) Upsert(ctx context.Context, p Profile) error {
	const q = `
INSERT INTO profiles (id, email, full_name, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  role = EXCLUDED.role
`
	_, err := r.db.Exec(ctx, q, p.ID, p.Email, p.FullName, string(ParseRole(string(p.Role))))
	return err
}

// Ping runs the cheapest query the status monitor can rely on.
func (r *Repository) Ping(ctx context.Context) error {
	const q = `SELECT id FROM profiles LIMIT 1`
	var id string
	err := r.db.QueryRow(ctx, q).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}
