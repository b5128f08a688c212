package catalog

import (
	"context"
	"log"
	"net/http"
	"time"

	"campusbooking/internal/api"
	"campusbooking/internal/availability"
	"campusbooking/internal/booking"
)

type Store interface {
	ListRooms(ctx context.Context) ([]Room, error)
	ListEquipment(ctx context.Context) ([]Equipment, error)
}

type ApprovedBookings interface {
	ListApprovedAll(ctx context.Context, itemType *booking.ItemType) ([]booking.Booking, error)
}

type Handlers struct {
	Items    Store
	Bookings ApprovedBookings
	Resolver availability.Resolver
	Now      func() time.Time
}

func (h Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h Handlers) approved(ctx context.Context, t booking.ItemType) ([]booking.Booking, error) {
	return h.Bookings.ListApprovedAll(ctx, &t)
}

func (h Handlers) Rooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Items.ListRooms(r.Context())
	if err != nil {
		dependencyFailed(w, "list rooms", err)
		return
	}
	approved, err := h.approved(r.Context(), booking.ItemRoom)
	if err != nil {
		dependencyFailed(w, "list approved bookings", err)
		return
	}

	items := make([]availability.Item, len(rooms))
	for i, rm := range rooms {
		items[i] = rm.item()
	}
	statuses := h.Resolver.ResolveAll(items, approved, h.now())

	out := make([]Labeled[Room], len(rooms))
	for i, rm := range rooms {
		out[i] = Labeled[Room]{Item: rm, CurrentStatus: statuses[i], StatusLabel: statuses[i].Label()}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h Handlers) Equipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.Items.ListEquipment(r.Context())
	if err != nil {
		dependencyFailed(w, "list equipment", err)
		return
	}
	approved, err := h.approved(r.Context(), booking.ItemEquipment)
	if err != nil {
		dependencyFailed(w, "list approved bookings", err)
		return
	}

	items := make([]availability.Item, len(equipment))
	for i, e := range equipment {
		items[i] = e.item()
	}
	statuses := h.Resolver.ResolveAll(items, approved, h.now())

	out := make([]Labeled[Equipment], len(equipment))
	for i, e := range equipment {
		out[i] = Labeled[Equipment]{Item: e, CurrentStatus: statuses[i], StatusLabel: statuses[i].Label()}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": out})
}

// Bookable lists the items of ?type=room|equipment that can be requested right now.
func (h Handlers) Bookable(w http.ResponseWriter, r *http.Request) {
	t, err := booking.ParseItemType(r.URL.Query().Get("type"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "type must be room or equipment")
		return
	}

	names := map[string]string{}
	var items []availability.Item
	switch t {
	case booking.ItemRoom:
		rooms, err := h.Items.ListRooms(r.Context())
		if err != nil {
			dependencyFailed(w, "list rooms", err)
			return
		}
		for _, rm := range rooms {
			items = append(items, rm.item())
			names[rm.ID] = rm.Name
		}
	case booking.ItemEquipment:
		equipment, err := h.Items.ListEquipment(r.Context())
		if err != nil {
			dependencyFailed(w, "list equipment", err)
			return
		}
		for _, e := range equipment {
			items = append(items, e.item())
			names[e.ID] = e.Name
		}
	}

	approved, err := h.approved(r.Context(), t)
	if err != nil {
		dependencyFailed(w, "list approved bookings", err)
		return
	}

	bookable := h.Resolver.Bookable(items, approved, h.now())
	out := make([]BookableItem, len(bookable))
	for i, it := range bookable {
		out[i] = BookableItem{ItemType: it.Type, ID: it.ID, Name: names[it.ID]}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": out})
}

func dependencyFailed(w http.ResponseWriter, op string, err error) {
	log.Printf("[catalog] %s failed: %v", op, err)
	api.WriteError(w, http.StatusBadGateway, "DEPENDENCY_FAILED", "storage unavailable")
}
