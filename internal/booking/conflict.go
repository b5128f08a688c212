package booking

import "time"

// Overlaps reports whether [a0, a1) and [b0, b1) intersect. Touching intervals do not.
func Overlaps(a0, a1, b0, b1 time.Time) bool {
	return a0.Before(b1) && b0.Before(a1)
}

// HasApprovedOverlap reports whether any approved booking of the given item overlaps [start, end).
// Bookings for other items and bookings that are not approved are ignored.
func HasApprovedOverlap(existing []Booking, itemType ItemType, itemID string, start, end time.Time) bool {
	for _, b := range existing {
		if b.ItemType != itemType || b.ItemID != itemID || b.Status != StatusApproved {
			continue
		}
		if Overlaps(b.Start, b.End, start, end) {
			return true
		}
	}
	return false
}
