package booking

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"campusbooking/internal/api"
)

type Handlers struct {
	Service *Service
}

func (h Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	b, err := h.Service.Submit(r.Context(), api.ProfileFromContext(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]any{"booking": b})
}

func (h Handlers) ListMine(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListMine(r.Context(), api.ProfileFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) ListQueue(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListQueue(r.Context(), api.ProfileFromContext(r.Context()), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Approve(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, StatusApproved)
}

func (h Handlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, StatusRejected)
}

func (h Handlers) setStatus(w http.ResponseWriter, r *http.Request, next Status) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	b, err := h.Service.SetStatus(r.Context(), api.ProfileFromContext(r.Context()), id, next)
	if err != nil {
		writeError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"booking": b})
}

func (h Handlers) Events(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	evs, err := h.Service.Events(r.Context(), api.ProfileFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": evs})
}

func bookingID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return "", false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	var ve ValidationError
	var de *DependencyError
	switch {
	case errors.As(err, &ve):
		api.WriteError(w, http.StatusBadRequest, ve.Code, ve.Message)
	case errors.Is(err, ErrUnauthenticated):
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, ErrForbidden):
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrNotFound):
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking or item not found")
	case errors.Is(err, ErrConflict):
		api.WriteError(w, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		api.WriteError(w, http.StatusConflict, "INVALID_STATE_TRANSITION", err.Error())
	case errors.As(err, &de):
		log.Printf("[booking] dependency failure op=%s err=%v", de.Op, de.Err)
		api.WriteError(w, http.StatusBadGateway, "DEPENDENCY_FAILED", "storage unavailable")
	default:
		log.Printf("[booking] unexpected error: %v", err)
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
