package session

import (
	"sync"
	"time"
)

// Registry holds one Tracker per visitor, created lazily on first use.
// This is the server-side equivalent of one session per browser context.
type Registry struct {
	mu       sync.Mutex
	trackers map[string]*Tracker
	timeout  time.Duration
	now      func() time.Time
}

// NewRegistry creates an empty registry. The timeout is applied to every
// tracker it allocates.
func NewRegistry(timeout time.Duration) *Registry {
	return &Registry{
		trackers: make(map[string]*Tracker),
		timeout:  timeout,
		now:      time.Now,
	}
}

// Lookup returns the visitor's tracker, allocating one on first sight.
// An empty visitor id maps to a shared anonymous tracker.
func (r *Registry) Lookup(visitorID string) *Tracker {
	if visitorID == "" {
		visitorID = "anonymous"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.trackers[visitorID]
	if t == nil {
		t = NewTracker(r.timeout)
		r.trackers[visitorID] = t
	}
	return t
}

// Prune drops trackers whose sessions have been inactive longer than the
// given age. Sessions themselves roll over at the timeout; pruning only
// reclaims memory for visitors who never came back.
func (r *Registry) Prune(olderThan time.Duration) int {
	cutoff := r.now().Add(-olderThan)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, t := range r.trackers {
		if t.Snapshot().LastActive.Before(cutoff) {
			delete(r.trackers, id)
			removed++
		}
	}
	return removed
}

// Len reports how many trackers are currently held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trackers)
}
