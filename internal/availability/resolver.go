package availability

import (
	"time"

	"campusbooking/internal/booking"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusInUse       Status = "in_use"
	StatusUnavailable Status = "unavailable"
)

// Label is the text shown next to an item.
func (s Status) Label() string {
	switch s {
	case StatusUnavailable:
		return "Unavailable (Admin)"
	case StatusInUse:
		return "In use"
	default:
		return "Available"
	}
}

// Item is the part of a room or equipment row the resolver needs.
type Item struct {
	Type        booking.ItemType
	ID          string
	IsAvailable bool
}

// Resolver derives the display status of catalog items from approved bookings.
//
// By default an item is in use while start <= now < end, the same half-open interval the conflict
// check uses. InclusiveEnd also counts now == end as in use.
type Resolver struct {
	InclusiveEnd bool
}

// ResolveStatus applies the default half-open resolver. Unlike the legacy closed check
// (start <= now <= end), an item is available again at the instant its booking ends; use
// Resolver{InclusiveEnd: true} for the legacy behavior.
func ResolveStatus(item Item, approved []booking.Booking, now time.Time) Status {
	return Resolver{}.Resolve(item, approved, now)
}

func (r Resolver) Resolve(item Item, approved []booking.Booking, now time.Time) Status {
	if !item.IsAvailable {
		return StatusUnavailable
	}
	for _, b := range approved {
		if b.ItemType != item.Type || b.ItemID != item.ID || b.Status != booking.StatusApproved {
			continue
		}
		if r.contains(b, now) {
			return StatusInUse
		}
	}
	return StatusAvailable
}

func (r Resolver) contains(b booking.Booking, now time.Time) bool {
	if now.Before(b.Start) {
		return false
	}
	if r.InclusiveEnd {
		return !now.After(b.End)
	}
	return now.Before(b.End)
}

// ResolveAll labels every item; out[i] is the status of items[i].
func (r Resolver) ResolveAll(items []Item, approved []booking.Booking, now time.Time) []Status {
	byItem := indexApproved(approved)
	out := make([]Status, len(items))
	for i, it := range items {
		out[i] = r.Resolve(it, byItem[key{it.Type, it.ID}], now)
	}
	return out
}

// Bookable returns the items the booking form may offer right now: enabled and not in use.
func (r Resolver) Bookable(items []Item, approved []booking.Booking, now time.Time) []Item {
	statuses := r.ResolveAll(items, approved, now)
	out := make([]Item, 0, len(items))
	for i, it := range items {
		if statuses[i] == StatusAvailable {
			out = append(out, it)
		}
	}
	return out
}

type key struct {
	t  booking.ItemType
	id string
}

func indexApproved(approved []booking.Booking) map[key][]booking.Booking {
	m := make(map[key][]booking.Booking)
	for _, b := range approved {
		if b.Status != booking.StatusApproved {
			continue
		}
		k := key{b.ItemType, b.ItemID}
		m[k] = append(m[k], b)
	}
	return m
}
