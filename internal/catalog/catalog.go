package catalog

import (
	"time"

	"campusbooking/internal/availability"
	"campusbooking/internal/booking"
)

type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Equipment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r Room) item() availability.Item {
	return availability.Item{Type: booking.ItemRoom, ID: r.ID, IsAvailable: r.IsAvailable}
}

func (e Equipment) item() availability.Item {
	return availability.Item{Type: booking.ItemEquipment, ID: e.ID, IsAvailable: e.IsAvailable}
}

// Labeled pairs a catalog row with its derived status.
type Labeled[T any] struct {
	Item          T                   `json:"item"`
	CurrentStatus availability.Status `json:"currentStatus"`
	StatusLabel   string              `json:"statusLabel"`
}

// BookableItem is an option for the booking form.
type BookableItem struct {
	ItemType booking.ItemType `json:"itemType"`
	ID       string           `json:"id"`
	Name     string           `json:"name"`
}
