package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_InitialStateIsLoading(t *testing.T) {
	m := NewMonitor(time.Minute)
	assert.Equal(t, StateLoading, m.Snapshot().Status)

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMonitor_CheckNow(t *testing.T) {
	fixed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	var fail atomic.Bool
	m := NewMonitor(time.Minute, Check{Name: "database", Run: func(context.Context) error {
		if fail.Load() {
			return errors.New("connection refused")
		}
		return nil
	}})
	m.Now = func() time.Time { return fixed }

	snap := m.CheckNow(context.Background())
	assert.Equal(t, StateActive, snap.Status)
	require.NotNil(t, snap.CheckedAt)
	assert.Equal(t, fixed, *snap.CheckedAt)

	fail.Store(true)
	snap = m.CheckNow(context.Background())
	assert.Equal(t, StateError, snap.Status)
	assert.Equal(t, "database: connection refused", snap.Message)

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, StateError, body.Status)
}

func TestMonitor_StartPollsUntilStop(t *testing.T) {
	var calls atomic.Int32
	m := NewMonitor(10*time.Millisecond, Check{Name: "ping", Run: func(context.Context) error {
		calls.Add(1)
		return nil
	}})

	m.Start(context.Background())
	m.Start(context.Background()) // second Start is a no-op

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	m.Stop()

	after := calls.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no checks after Stop")
	assert.Equal(t, StateActive, m.Snapshot().Status)

	m.Stop() // idempotent
}
