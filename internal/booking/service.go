package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"campusbooking/internal/events"
	"campusbooking/internal/profile"
)

// Store is the persistence the booking rules run against.
type Store interface {
	ListApproved(ctx context.Context, itemType ItemType, itemID string) ([]Booking, error)
	// Insert persists b as pending. It returns ErrNotFound when the item does not exist.
	Insert(ctx context.Context, b Booking, actor string) (*Booking, error)
	Get(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	ListQueue(ctx context.Context, status *Status) ([]QueueItem, error)
	// Transition moves booking id to next while holding the item's approval lock. check sees the
	// current row and the item's other approved bookings; a non-nil result aborts the change.
	// The recorded event is stamped with at.
	Transition(ctx context.Context, id string, next Status, actor string, at time.Time, check func(cur Booking, approved []Booking) error) (*Booking, error)
	Events(ctx context.Context, id string) ([]events.Event, error)
}

type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Message is the payload published on booking.* routing keys.
type Message struct {
	Event      string    `json:"event"`
	BookingID  string    `json:"bookingId"`
	ItemType   ItemType  `json:"itemType"`
	ItemID     string    `json:"itemId"`
	UserID     string    `json:"userId"`
	Status     Status    `json:"status"`
	Actor      string    `json:"actor"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	OccurredAt time.Time `json:"occurredAt"`
}

type SubmitRequest struct {
	ItemType  string    `json:"itemType" validate:"required,oneof=room equipment"`
	ItemID    string    `json:"itemId" validate:"required,uuid"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
	Notes     string    `json:"notes" validate:"max=1000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var tracer = otel.Tracer("campusbooking/booking")

type Service struct {
	Store     Store
	Publisher Publisher
	Now       func() time.Time
}

func NewService(store Store, pub Publisher) *Service {
	return &Service{Store: store, Publisher: pub, Now: time.Now}
}

// Submit admits a new booking request in pending status.
func (s *Service) Submit(ctx context.Context, actor *profile.Profile, req SubmitRequest) (*Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.Submit")
	defer span.End()

	if !req.StartTime.Before(req.EndTime) {
		return nil, ValidationError{Code: "INVALID_INTERVAL", Message: "start time must be before end time"}
	}
	if actor == nil || actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	itemType := ItemType(req.ItemType)
	span.SetAttributes(
		attribute.String("booking.item_type", string(itemType)),
		attribute.String("booking.item_id", req.ItemID),
	)

	approved, err := s.Store.ListApproved(ctx, itemType, req.ItemID)
	if err != nil {
		return nil, dependency(span, "list approved bookings", err)
	}
	if HasApprovedOverlap(approved, itemType, req.ItemID, req.StartTime, req.EndTime) {
		span.SetStatus(codes.Error, ErrConflict.Error())
		return nil, ErrConflict
	}

	b := Booking{
		ItemType: itemType,
		ItemID:   req.ItemID,
		UserID:   actor.ID,
		Start:    req.StartTime.UTC(),
		End:      req.EndTime.UTC(),
		Status:   StatusPending,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		b.Notes = &notes
	}

	created, err := s.Store.Insert(ctx, b, actor.ID)
	if err != nil {
		var ve ValidationError
		if errors.Is(err, ErrNotFound) || errors.As(err, &ve) {
			return nil, err
		}
		return nil, dependency(span, "insert booking", err)
	}

	s.publish(ctx, "booking.created", created, actor.ID, created.CreatedAt)
	return created, nil
}

func (s *Service) ListMine(ctx context.Context, actor *profile.Profile) ([]Booking, error) {
	if actor == nil || actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	items, err := s.Store.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, &DependencyError{Op: "list user bookings", Err: err}
	}
	return items, nil
}

// ListQueue returns bookings for moderation, oldest first, optionally filtered by status.
func (s *Service) ListQueue(ctx context.Context, actor *profile.Profile, status string) ([]QueueItem, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	var filter *Status
	if status != "" {
		st, err := ParseStatus(status)
		if err != nil {
			return nil, ValidationError{Code: "VALIDATION_FAILED", Message: "invalid status"}
		}
		filter = &st
	}
	items, err := s.Store.ListQueue(ctx, filter)
	if err != nil {
		return nil, &DependencyError{Op: "list booking queue", Err: err}
	}
	return items, nil
}

func (s *Service) Approve(ctx context.Context, actor *profile.Profile, id string) (*Booking, error) {
	return s.SetStatus(ctx, actor, id, StatusApproved)
}

func (s *Service) Reject(ctx context.Context, actor *profile.Profile, id string) (*Booking, error) {
	return s.SetStatus(ctx, actor, id, StatusRejected)
}

// SetStatus applies a moderation decision. Approval re-runs the conflict check under the item lock.
func (s *Service) SetStatus(ctx context.Context, actor *profile.Profile, id string, next Status) (*Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.SetStatus")
	defer span.End()
	span.SetAttributes(attribute.String("booking.id", id), attribute.String("booking.next_status", string(next)))

	if err := requireModerator(actor); err != nil {
		return nil, err
	}

	at := s.now()
	updated, err := s.Store.Transition(ctx, id, next, actor.ID, at, func(cur Booking, approved []Booking) error {
		if !CanTransition(cur.Status, next) {
			return ErrInvalidTransition
		}
		if next == StatusApproved && HasApprovedOverlap(approved, cur.ItemType, cur.ItemID, cur.Start, cur.End) {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrConflict) {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		return nil, dependency(span, "transition booking", err)
	}

	s.publish(ctx, "booking."+string(next), updated, actor.ID, at)
	return updated, nil
}

// Events returns the booking timeline to its owner or to a moderator.
func (s *Service) Events(ctx context.Context, actor *profile.Profile, id string) ([]events.Event, error) {
	if actor == nil || actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	b, err := s.Store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, &DependencyError{Op: "get booking", Err: err}
	}
	if b.UserID != actor.ID && !actor.Role.CanModerate() {
		return nil, ErrNotFound
	}
	evs, err := s.Store.Events(ctx, id)
	if err != nil {
		return nil, &DependencyError{Op: "list booking events", Err: err}
	}
	return evs, nil
}

func (s *Service) publish(ctx context.Context, key string, b *Booking, actor string, at time.Time) {
	if s.Publisher == nil || b == nil {
		return
	}
	msg := Message{
		Event:      key,
		BookingID:  b.ID,
		ItemType:   b.ItemType,
		ItemID:     b.ItemID,
		UserID:     b.UserID,
		Status:     b.Status,
		Actor:      actor,
		StartTime:  b.Start,
		EndTime:    b.End,
		OccurredAt: at,
	}
	// The booking is committed; a broker outage must not fail the request.
	if err := s.Publisher.PublishJSON(ctx, key, msg); err != nil {
		log.Printf("[booking] publish failed key=%s booking=%s err=%v", key, b.ID, err)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func dependency(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	return &DependencyError{Op: op, Err: err}
}

func requireModerator(actor *profile.Profile) error {
	if actor == nil || actor.ID == "" {
		return ErrUnauthenticated
	}
	if !actor.Role.CanModerate() {
		return ErrForbidden
	}
	return nil
}

func validationFailed(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return ValidationError{
			Code:    "VALIDATION_FAILED",
			Message: fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()),
		}
	}
	return ValidationError{Code: "VALIDATION_FAILED", Message: err.Error()}
}
