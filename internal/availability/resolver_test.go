package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campusbooking/internal/booking"
)

var now = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func approved(itemType booking.ItemType, itemID string, start, end time.Time) booking.Booking {
	return booking.Booking{ItemType: itemType, ItemID: itemID, Start: start, End: end, Status: booking.StatusApproved}
}

func TestResolveStatus_InUseDuringApprovedBooking(t *testing.T) {
	y := Item{Type: booking.ItemRoom, ID: "Y", IsAvailable: true}
	bs := []booking.Booking{approved(booking.ItemRoom, "Y", now.Add(-5*time.Minute), now.Add(5*time.Minute))}

	assert.Equal(t, StatusInUse, ResolveStatus(y, bs, now))
}

func TestResolveStatus_UnavailableWinsOverEverything(t *testing.T) {
	z := Item{Type: booking.ItemEquipment, ID: "Z", IsAvailable: false}
	assert.Equal(t, StatusUnavailable, ResolveStatus(z, nil, now))

	bs := []booking.Booking{approved(booking.ItemEquipment, "Z", now.Add(-time.Hour), now.Add(time.Hour))}
	assert.Equal(t, StatusUnavailable, ResolveStatus(z, bs, now))
}

func TestResolveStatus_IgnoresOtherItemsAndNonApproved(t *testing.T) {
	x := Item{Type: booking.ItemRoom, ID: "X", IsAvailable: true}
	pending := approved(booking.ItemRoom, "X", now.Add(-time.Hour), now.Add(time.Hour))
	pending.Status = booking.StatusPending
	bs := []booking.Booking{
		pending,
		approved(booking.ItemRoom, "other", now.Add(-time.Hour), now.Add(time.Hour)),
		approved(booking.ItemEquipment, "X", now.Add(-time.Hour), now.Add(time.Hour)),
	}
	assert.Equal(t, StatusAvailable, ResolveStatus(x, bs, now))
}

func TestResolver_Boundaries(t *testing.T) {
	x := Item{Type: booking.ItemRoom, ID: "X", IsAvailable: true}
	startsNow := []booking.Booking{approved(booking.ItemRoom, "X", now, now.Add(time.Hour))}
	endsNow := []booking.Booking{approved(booking.ItemRoom, "X", now.Add(-time.Hour), now)}

	half := Resolver{}
	assert.Equal(t, StatusInUse, half.Resolve(x, startsNow, now))
	assert.Equal(t, StatusAvailable, half.Resolve(x, endsNow, now))

	inclusive := Resolver{InclusiveEnd: true}
	assert.Equal(t, StatusInUse, inclusive.Resolve(x, startsNow, now))
	assert.Equal(t, StatusInUse, inclusive.Resolve(x, endsNow, now))
}

func TestResolver_ResolveAllAndBookable(t *testing.T) {
	items := []Item{
		{Type: booking.ItemRoom, ID: "a", IsAvailable: true},
		{Type: booking.ItemRoom, ID: "b", IsAvailable: true},
		{Type: booking.ItemRoom, ID: "c", IsAvailable: false},
	}
	bs := []booking.Booking{approved(booking.ItemRoom, "b", now.Add(-time.Minute), now.Add(time.Minute))}

	r := Resolver{}
	assert.Equal(t, []Status{StatusAvailable, StatusInUse, StatusUnavailable}, r.ResolveAll(items, bs, now))

	bookable := r.Bookable(items, bs, now)
	if assert.Len(t, bookable, 1) {
		assert.Equal(t, "a", bookable[0].ID)
	}
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Unavailable (Admin)", StatusUnavailable.Label())
	assert.Equal(t, "In use", StatusInUse.Label())
	assert.Equal(t, "Available", StatusAvailable.Label())
}
