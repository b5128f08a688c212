package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"campusbooking/internal/events"
)

// memStore is an in-memory Store. Known items are registered in items.
type memStore struct {
	mu       sync.Mutex
	items    map[string]ItemType
	bookings map[string]*Booking
	events   map[string][]events.Event

	failWith  error
	insertErr error
	listCalls int
}

func newMemStore() *memStore {
	return &memStore{
		items:    map[string]ItemType{},
		bookings: map[string]*Booking{},
		events:   map[string][]events.Event{},
	}
}

func (m *memStore) addItem(t ItemType) string {
	id := uuid.NewString()
	m.items[id] = t
	return id
}

func (m *memStore) seed(b Booking) *Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	m.bookings[b.ID] = &b
	return &b
}

func (m *memStore) ListApproved(_ context.Context, itemType ItemType, itemID string) ([]Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.approvedLocked(itemType, itemID, ""), nil
}

func (m *memStore) approvedLocked(itemType ItemType, itemID, excludeID string) []Booking {
	var out []Booking
	for _, b := range m.bookings {
		if b.ItemType == itemType && b.ItemID == itemID && b.Status == StatusApproved && b.ID != excludeID {
			out = append(out, *b)
		}
	}
	return out
}

func (m *memStore) Insert(_ context.Context, b Booking, actor string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	if t, ok := m.items[b.ItemID]; !ok || t != b.ItemType {
		return nil, ErrNotFound
	}
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.bookings[b.ID] = &b
	m.events[b.ID] = append(m.events[b.ID], events.Event{BookingID: b.ID, EventType: events.TypeSubmitted, Actor: actor, OccurredAt: b.CreatedAt})
	out := b
	return &out, nil
}

func (m *memStore) Get(_ context.Context, id string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *b
	return &out, nil
}

func (m *memStore) ListByUser(_ context.Context, userID string) ([]Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []Booking{}
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memStore) ListQueue(_ context.Context, status *Status) ([]QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []QueueItem{}
	for _, b := range m.bookings {
		if status == nil || b.Status == *status {
			out = append(out, QueueItem{Booking: *b})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Transition holds the store mutex for the whole check-and-write, like the item lock does in Postgres.
func (m *memStore) Transition(_ context.Context, id string, next Status, actor string, at time.Time, check func(cur Booking, approved []Booking) error) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := check(*b, m.approvedLocked(b.ItemType, b.ItemID, b.ID)); err != nil {
		return nil, err
	}
	b.Status = next
	b.UpdatedAt = at
	eventType := events.TypeRejected
	if next == StatusApproved {
		eventType = events.TypeApproved
	}
	m.events[id] = append(m.events[id], events.Event{BookingID: id, EventType: eventType, Actor: actor, OccurredAt: at})
	out := *b
	return &out, nil
}

func (m *memStore) Events(_ context.Context, id string) ([]events.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return nil, errors.New("unknown booking")
	}
	return m.events[id], nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	msgs []Message
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	if msg, ok := v.(Message); ok {
		p.msgs = append(p.msgs, msg)
	}
	return p.err
}
