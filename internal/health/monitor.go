package health

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"campusbooking/internal/api"
)

type State string

const (
	StateLoading State = "loading"
	StateActive  State = "active"
	StateError   State = "error"
)

// Check is one probe of a backend dependency.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

type Snapshot struct {
	Status    State      `json:"status"`
	Message   string     `json:"message"`
	CheckedAt *time.Time `json:"checkedAt,omitempty"`
}

// Monitor runs its checks on a fixed interval between Start and Stop and keeps the last result.
type Monitor struct {
	Checks   []Check
	Interval time.Duration
	Timeout  time.Duration
	Now      func() time.Time

	mu     sync.RWMutex
	last   Snapshot
	cancel context.CancelFunc
	done   chan struct{}
}

func NewMonitor(interval time.Duration, checks ...Check) *Monitor {
	return &Monitor{
		Checks:   checks,
		Interval: interval,
		Timeout:  10 * time.Second,
		Now:      time.Now,
		last:     Snapshot{Status: StateLoading, Message: "checking backend status"},
	}
}

// Start runs a first check immediately, then one per interval until Stop or ctx is done.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.mu.Unlock()

	interval := m.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		m.CheckNow(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.CheckNow(ctx)
			}
		}
	}()
}

// Stop halts the polling loop and waits for an in-flight check to return.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// CheckNow runs every check once and records the outcome.
func (m *Monitor) CheckNow(ctx context.Context) Snapshot {
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snap := Snapshot{Status: StateActive, Message: "backend is active"}
	for _, c := range m.Checks {
		if err := c.Run(ctx); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				// Shutting down; keep the previous result.
				return m.Snapshot()
			}
			snap = Snapshot{Status: StateError, Message: fmt.Sprintf("%s: %v", c.Name, err)}
			log.Printf("[health] check failed name=%s err=%v", c.Name, err)
			break
		}
	}
	checkedAt := m.now()
	snap.CheckedAt = &checkedAt

	m.mu.Lock()
	m.last = snap
	m.mu.Unlock()
	return snap
}

func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

func (m *Monitor) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// ServeHTTP reports the last snapshot; a failed check answers 500.
func (m *Monitor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snap := m.Snapshot()
	status := http.StatusOK
	if snap.Status == StateError {
		status = http.StatusInternalServerError
	}
	api.WriteJSON(w, status, snap)
}
