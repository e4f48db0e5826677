package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"visitor-insights-service/internal/model"
)

// Tracker maintains one logical visit session, rolling over to a fresh
// session once inactivity exceeds the timeout. The superseded session is
// abandoned without a finalize step. A fresh session starts with one page
// view and zero interactions, and the event that created it is absorbed
// into that initial state rather than counted on top of it.
type Tracker struct {
	mu      sync.Mutex
	current model.Session
	fresh   bool
	timeout time.Duration
	now     func() time.Time
}

// NewTracker starts a tracker with a fresh session.
func NewTracker(timeout time.Duration) *Tracker {
	t := &Tracker{
		timeout: timeout,
		now:     time.Now,
	}
	t.current = t.newSession()
	t.fresh = true
	return t
}

func (t *Tracker) newSession() model.Session {
	now := t.now()
	return model.Session{
		ID:           uuid.New().String(),
		StartTime:    now,
		LastActive:   now,
		PageViews:    1,
		Interactions: 0,
	}
}

// RecordActivity registers one tracked interaction (click, scroll, key
// press, pointer move, visibility regained). Rolls the session over first
// if it has gone stale.
func (t *Tracker) RecordActivity() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.absorb() {
		t.current.Interactions++
	}
	t.current.LastActive = t.now()
}

// RecordPageView registers a navigation on the current session. A page
// view refreshes activity but does not count as an interaction.
func (t *Tracker) RecordPageView() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.absorb() {
		t.current.PageViews++
	}
	t.current.LastActive = t.now()
}

// Touch refreshes activity without incrementing any counter, used when an
// event is recorded that is neither an interaction nor a page view.
func (t *Tracker) Touch() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.absorb()
	t.current.LastActive = t.now()
}

// Snapshot returns an immutable copy of the current session.
func (t *Tracker) Snapshot() model.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// absorb rolls the session over when lastActive is older than the timeout
// and reports whether the calling event belongs to a fresh session, whose
// initial counters already account for it. Caller must hold the mutex.
func (t *Tracker) absorb() bool {
	if t.now().Sub(t.current.LastActive) > t.timeout {
		t.current = t.newSession()
		t.fresh = false
		return true
	}
	if t.fresh {
		t.fresh = false
		return true
	}
	return false
}
