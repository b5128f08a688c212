package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"

	"campusbooking/internal/profile"
	"campusbooking/pkg/config"
	"campusbooking/pkg/db"
)

func main() {
	file := flag.String("file", "cmd/dev/seed/example.toml", "TOML seed file")
	flag.Parse()

	seed, err := LoadSeedFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed file: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	profiles := profile.NewRepository(pool)
	for _, p := range seed.Profiles {
		if err := profiles.Upsert(ctx, profile.Profile{ID: p.ID, Email: p.Email, FullName: p.FullName, Role: profile.Role(p.Role)}); err != nil {
			fmt.Fprintf(os.Stderr, "profile %s: %v\n", p.Email, err)
			os.Exit(1)
		}
	}

	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		for _, r := range seed.Rooms {
			const q = `
INSERT INTO rooms (id, name, capacity, location, description, is_available)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name, capacity = EXCLUDED.capacity, location = EXCLUDED.location,
  description = EXCLUDED.description, is_available = EXCLUDED.is_available
`
			if _, err := tx.Exec(ctx, q, r.ID, r.Name, r.Capacity, r.Location, r.Description, *r.IsAvailable); err != nil {
				return fmt.Errorf("room %s: %w", r.Name, err)
			}
		}
		for _, e := range seed.Equipment {
			const q = `
INSERT INTO equipment (id, name, quantity, description, is_available)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name, quantity = EXCLUDED.quantity,
  description = EXCLUDED.description, is_available = EXCLUDED.is_available
`
			if _, err := tx.Exec(ctx, q, e.ID, e.Name, e.Quantity, e.Description, *e.IsAvailable); err != nil {
				return fmt.Errorf("equipment %s: %w", e.Name, err)
			}
		}
		for _, s := range seed.Supplies {
			var minQty *string
			if s.MinQuantity != "" {
				minQty = &s.MinQuantity
			}
			const q = `
INSERT INTO supplies (id, name, description, quantity, unit, min_quantity)
VALUES ($1, $2, $3, $4::numeric, $5, $6::numeric)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name, description = EXCLUDED.description, quantity = EXCLUDED.quantity,
  unit = EXCLUDED.unit, min_quantity = EXCLUDED.min_quantity
`
			if _, err := tx.Exec(ctx, q, s.ID, s.Name, s.Description, s.Quantity, s.Unit, minQty); err != nil {
				return fmt.Errorf("supply %s: %w", s.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeded profiles=%d rooms=%d equipment=%d supplies=%d\n",
		len(seed.Profiles), len(seed.Rooms), len(seed.Equipment), len(seed.Supplies))
}
