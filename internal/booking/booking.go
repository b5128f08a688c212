package booking

import (
	"fmt"
	"time"
)

type ItemType string

const (
	ItemRoom      ItemType = "room"
	ItemEquipment ItemType = "equipment"
)

func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemRoom, ItemEquipment:
		return ItemType(s), nil
	default:
		return "", fmt.Errorf("unknown item type: %s", s)
	}
}

// Booking is a reservation of one item over the half-open interval [Start, End).
type Booking struct {
	ID        string    `json:"id"`
	ItemType  ItemType  `json:"itemType"`
	ItemID    string    `json:"itemId"`
	UserID    string    `json:"userId"`
	Start     time.Time `json:"startTime"`
	End       time.Time `json:"endTime"`
	Status    Status    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QueueItem is a booking decorated for the moderation queue.
type QueueItem struct {
	Booking
	ItemName string `json:"itemName"`
	UserName string `json:"userName"`
}
