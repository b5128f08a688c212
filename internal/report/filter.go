package report

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusbooking/internal/booking"
)

const dateLayout = "2006-01-02"

type BookingFilter struct {
	From     *time.Time
	To       *time.Time
	ItemType *booking.ItemType
	ItemID   string
	Status   *booking.Status
}

type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange reads ?from and ?to as dates (YYYY-MM-DD) or RFC 3339 timestamps.
// A bare "to" date covers the whole day.
func ParseDateRange(q url.Values, loc *time.Location) (DateRange, error) {
	var dr DateRange
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, _, err := parseDate(v, loc)
		if err != nil {
			return dr, fmt.Errorf("invalid from: %w", err)
		}
		dr.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, dateOnly, err := parseDate(v, loc)
		if err != nil {
			return dr, fmt.Errorf("invalid to: %w", err)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Millisecond)
		}
		dr.To = &t
	}
	if dr.From != nil && dr.To != nil && dr.To.Before(*dr.From) {
		return dr, fmt.Errorf("to is before from")
	}
	return dr, nil
}

func ParseBookingFilter(q url.Values, loc *time.Location) (BookingFilter, error) {
	dr, err := ParseDateRange(q, loc)
	if err != nil {
		return BookingFilter{}, err
	}
	f := BookingFilter{From: dr.From, To: dr.To}

	if v := q.Get("itemType"); v != "" && v != "all" {
		t, err := booking.ParseItemType(v)
		if err != nil {
			return f, err
		}
		f.ItemType = &t
	}
	if v := q.Get("itemId"); v != "" && v != "all" {
		if f.ItemType == nil {
			return f, fmt.Errorf("itemId requires itemType")
		}
		if _, err := uuid.Parse(v); err != nil {
			return f, fmt.Errorf("invalid itemId")
		}
		f.ItemID = v
	}
	if v := q.Get("status"); v != "" && v != "all" {
		st, err := booking.ParseStatus(v)
		if err != nil {
			return f, err
		}
		f.Status = &st
	}
	return f, nil
}

func parseDate(v string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(dateLayout, v, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	return t, false, err
}
