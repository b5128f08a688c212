package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"campusbooking/internal/profile"
)

// SeedFile is the TOML layout of a local development catalog.
type SeedFile struct {
	Profiles  []SeedProfile   `toml:"profiles"`
	Rooms     []SeedRoom      `toml:"rooms"`
	Equipment []SeedEquipment `toml:"equipment"`
	Supplies  []SeedSupply    `toml:"supplies"`
}

type SeedProfile struct {
	ID       string `toml:"id"`
	Email    string `toml:"email"`
	FullName string `toml:"full_name"`
	Role     string `toml:"role"`
}

type SeedRoom struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Capacity    int    `toml:"capacity"`
	Location    string `toml:"location"`
	Description string `toml:"description"`
	IsAvailable *bool  `toml:"is_available"`
}

type SeedEquipment struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Quantity    int    `toml:"quantity"`
	Description string `toml:"description"`
	IsAvailable *bool  `toml:"is_available"`
}

type SeedSupply struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Quantity    string `toml:"quantity"`
	Unit        string `toml:"unit"`
	MinQuantity string `toml:"min_quantity"`
}

func LoadSeedFile(path string) (*SeedFile, error) {
	var f SeedFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}
	if err := f.normalize(); err != nil {
		return nil, err
	}
	return &f, nil
}

// normalize validates the file and fills generated ids and defaults.
func (f *SeedFile) normalize() error {
	for i := range f.Profiles {
		p := &f.Profiles[i]
		if _, err := uuid.Parse(p.ID); err != nil {
			return fmt.Errorf("profiles[%d]: id must be the auth user uuid", i)
		}
		if p.Role == "" {
			p.Role = string(profile.RoleCommon)
		}
		if string(profile.ParseRole(p.Role)) != p.Role {
			return fmt.Errorf("profiles[%d]: unknown role %q", i, p.Role)
		}
	}
	for i := range f.Rooms {
		r := &f.Rooms[i]
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("rooms[%d]: name is required", i)
		}
		if err := fillID(&r.ID); err != nil {
			return fmt.Errorf("rooms[%d]: %w", i, err)
		}
		r.IsAvailable = defaultTrue(r.IsAvailable)
	}
	for i := range f.Equipment {
		e := &f.Equipment[i]
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("equipment[%d]: name is required", i)
		}
		if err := fillID(&e.ID); err != nil {
			return fmt.Errorf("equipment[%d]: %w", i, err)
		}
		if e.Quantity == 0 {
			e.Quantity = 1
		}
		e.IsAvailable = defaultTrue(e.IsAvailable)
	}
	for i := range f.Supplies {
		s := &f.Supplies[i]
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("supplies[%d]: name is required", i)
		}
		if err := fillID(&s.ID); err != nil {
			return fmt.Errorf("supplies[%d]: %w", i, err)
		}
		if s.Quantity == "" {
			s.Quantity = "0"
		}
		if _, err := decimal.NewFromString(s.Quantity); err != nil {
			return fmt.Errorf("supplies[%d]: quantity: %w", i, err)
		}
		if s.MinQuantity != "" {
			if _, err := decimal.NewFromString(s.MinQuantity); err != nil {
				return fmt.Errorf("supplies[%d]: min_quantity: %w", i, err)
			}
		}
	}
	return nil
}

func fillID(id *string) error {
	if *id == "" {
		*id = uuid.NewString()
		return nil
	}
	if _, err := uuid.Parse(*id); err != nil {
		return fmt.Errorf("invalid id %q", *id)
	}
	return nil
}

func defaultTrue(b *bool) *bool {
	if b != nil {
		return b
	}
	t := true
	return &t
}
