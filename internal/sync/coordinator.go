package sync

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/service"
)

// Coordinator reacts to realtime change notifications on the booking,
// enquiry and analytics tables by triggering report generation or metric
// refreshes, and exposes the shared SyncState to observers. The process
// owns exactly one Coordinator.
type Coordinator struct {
	tracker   service.Tracker
	reports   service.ReportGenerator
	optimizer service.ContentOptimizer
	debounce  time.Duration
	now       func() time.Time

	mu     sync.Mutex
	state  model.SyncState
	subs   map[int]func(model.SyncState)
	nextID int
}

// NewCoordinator constructs the coordinator in the idle state. debounce
// is the minimum gap between report runs triggered by booking changes.
func NewCoordinator(tracker service.Tracker, reports service.ReportGenerator, optimizer service.ContentOptimizer, debounce time.Duration) *Coordinator {
	c := &Coordinator{
		tracker:   tracker,
		reports:   reports,
		optimizer: optimizer,
		debounce:  debounce,
		now:       time.Now,
		subs:      make(map[int]func(model.SyncState)),
	}
	c.state = model.SyncState{LastSync: c.now(), Status: model.SyncIdle}
	return c
}

// Subscribe registers an observer invoked synchronously on every state
// change, in registration order. The returned handle de-registers it.
// Observers needing the value before any change occurs call GetState.
func (c *Coordinator) Subscribe(callback func(model.SyncState)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = callback
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// GetState returns a copy of the current sync state.
func (c *Coordinator) GetState() model.SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HandleBookingChange records the change and, when the debounce window
// has elapsed since the last sync, regenerates the daily report.
func (c *Coordinator) HandleBookingChange(ctx context.Context, change model.TableChange) {
	c.beginSync()

	c.tracker.TrackEvent(model.EventData{
		Name: "booking_change",
		Properties: map[string]any{
			"type":      change.Operation,
			"bookingId": change.RowString("id"),
		},
	}, model.ClientContext{})

	if c.shouldGenerateReport() {
		if err := c.reports.GenerateReport(ctx); err != nil {
			c.fail("Booking sync failed", err)
			return
		}
	}

	c.completeSync()
}

// HandleEnquiryChange records the change and refreshes metrics for the
// originating page when the enquiry came through the website's own forms.
func (c *Coordinator) HandleEnquiryChange(ctx context.Context, change model.TableChange) {
	c.beginSync()

	c.tracker.TrackEvent(model.EventData{
		Name: "enquiry_change",
		Properties: map[string]any{
			"type":      change.Operation,
			"enquiryId": change.RowString("id"),
		},
	}, model.ClientContext{})

	if change.RowString("source") == "website" {
		if err := c.optimizer.UpdateMetrics(ctx, change.RowString("source_page")); err != nil {
			c.fail("Enquiry sync failed", err)
			return
		}
	}

	c.completeSync()
}

// HandleAnalyticsEvent reacts to a freshly inserted event row: page views
// refresh that page's metrics and conversion-tagged events are re-emitted
// as tracked conversions. The shared state machine is not moved for
// analytics rows.
func (c *Coordinator) HandleAnalyticsEvent(ctx context.Context, change model.TableChange) {
	name := change.RowString("event_name")
	properties, _ := change.Row["properties"].(map[string]any)

	switch name {
	case model.EventPageView:
		path, _ := properties["path"].(string)
		if err := c.optimizer.UpdateMetrics(ctx, path); err != nil {
			log.Printf("[ERROR] analytics event handling failed: %v", err)
		}
	case model.EventConversion:
		c.tracker.TrackEvent(model.EventData{
			Name:       "conversion_recorded",
			Properties: properties,
		}, model.ClientContext{})
	}
}

// RunDailyReport runs the daily report under the shared state machine.
// The report scheduler's timer calls this so a failed run is visible to
// sync observers without crashing the timer.
func (c *Coordinator) RunDailyReport(ctx context.Context) error {
	c.beginSync()

	if err := c.reports.GenerateReport(ctx); err != nil {
		c.fail("Daily report failed", err)
		return err
	}

	c.completeSync()
	return nil
}

// ForceSync runs report generation and content optimization once each,
// regardless of the debounce window.
func (c *Coordinator) ForceSync(ctx context.Context) error {
	c.beginSync()

	if err := c.reports.GenerateReport(ctx); err != nil {
		c.fail("Force sync failed", err)
		return err
	}
	if err := c.optimizer.OptimizeContent(ctx); err != nil {
		c.fail("Force sync failed", err)
		return err
	}

	c.completeSync()
	return nil
}

func (c *Coordinator) shouldGenerateReport() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now().Sub(c.state.LastSync) > c.debounce
}

func (c *Coordinator) beginSync() {
	c.setState(func(s *model.SyncState) {
		s.Status = model.SyncSyncing
		s.Error = ""
	})
}

func (c *Coordinator) completeSync() {
	c.setState(func(s *model.SyncState) {
		s.Status = model.SyncIdle
		s.LastSync = c.now()
	})
}

func (c *Coordinator) fail(message string, err error) {
	log.Printf("[ERROR] %s: %v", message, err)

	c.setState(func(s *model.SyncState) {
		s.Status = model.SyncError
		s.Error = err.Error()
	})

	c.tracker.TrackEvent(model.EventData{
		Name: "sync_error",
		Properties: map[string]any{
			"message": message,
			"error":   err.Error(),
		},
	}, model.ClientContext{})
}

// setState applies the mutation and notifies subscribers synchronously in
// registration order. Callbacks run outside the lock so they may call
// GetState or Subscribe.
func (c *Coordinator) setState(mutate func(*model.SyncState)) {
	c.mu.Lock()
	mutate(&c.state)
	state := c.state

	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	callbacks := make([]func(model.SyncState), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, c.subs[id])
	}
	c.mu.Unlock()

	for _, cb := range callbacks {
		cb(state)
	}
}
