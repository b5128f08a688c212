package report

import (
	"context"
	"log"
	"net/http"
	"time"

	"campusbooking/internal/api"
	"campusbooking/internal/booking"
	"campusbooking/internal/supply"
)

type BookingStore interface {
	Bookings(ctx context.Context, f BookingFilter) ([]booking.QueueItem, error)
}

type SupplyStore interface {
	ListCreatedBetween(ctx context.Context, from, to *time.Time) ([]supply.Supply, error)
}

type Handlers struct {
	Bookings BookingStore
	Supplies SupplyStore
	// Location interprets bare dates in filters. Defaults to UTC.
	Location *time.Location
}

func (h Handlers) loc() *time.Location {
	if h.Location != nil {
		return h.Location
	}
	return time.UTC
}

func (h Handlers) BookingsReport(w http.ResponseWriter, r *http.Request) {
	f, err := ParseBookingFilter(r.URL.Query(), h.loc())
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	items, err := h.Bookings.Bookings(r.Context(), f)
	if err != nil {
		log.Printf("[report] bookings query failed: %v", err)
		api.WriteError(w, http.StatusBadGateway, "DEPENDENCY_FAILED", "storage unavailable")
		return
	}

	totals := map[booking.Status]int{
		booking.StatusPending:  0,
		booking.StatusApproved: 0,
		booking.StatusRejected: 0,
	}
	for _, it := range items {
		totals[it.Status]++
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items, "totals": totals})
}

func (h Handlers) SuppliesReport(w http.ResponseWriter, r *http.Request) {
	dr, err := ParseDateRange(r.URL.Query(), h.loc())
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	items, err := h.Supplies.ListCreatedBetween(r.Context(), dr.From, dr.To)
	if err != nil {
		log.Printf("[report] supplies query failed: %v", err)
		api.WriteError(w, http.StatusBadGateway, "DEPENDENCY_FAILED", "storage unavailable")
		return
	}

	annotated := supply.Annotate(items)
	low := 0
	for _, s := range annotated {
		if s.LowStock {
			low++
		}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": annotated, "lowStockCount": low})
}
