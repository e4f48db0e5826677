package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/repository"
)

// Engagement thresholds for page classification.
const (
	bounceThresholdSeconds = 10

	highTimeOnPageSeconds = 120
	highBounceRateCeiling = 0.30
	highConversionFloor   = 0.02

	poorBounceRateFloor    = 0.60
	poorTimeOnPageSeconds  = 30
	poorConversionCeiling  = 0.01
	optimizeRunTimeout     = time.Minute
)

// ContentOptimizer periodically recomputes per-page engagement metrics
// over a trailing window and persists suggestions for underperformers.
type ContentOptimizer interface {
	// Start runs one optimization pass immediately, then repeats on the
	// configured interval until Stop.
	Start()

	// Stop cancels the recurring pass. Idempotent. An in-flight pass is
	// allowed to finish; its result is simply the last one recorded.
	Stop()

	// OptimizeContent runs one full pass over every page.
	OptimizeContent(ctx context.Context) error

	// UpdateMetrics refreshes metrics for a single page and persists a
	// suggestion if the page underperforms.
	UpdateMetrics(ctx context.Context, path string) error
}

type optimizer struct {
	events      repository.EventRepository
	suggestions repository.SuggestionRepository
	tracker     Tracker
	lookback    time.Duration
	interval    time.Duration
	now         func() time.Time

	mu   sync.Mutex
	stop chan struct{}
}

// NewContentOptimizer constructs a ContentOptimizer.
func NewContentOptimizer(events repository.EventRepository, suggestions repository.SuggestionRepository, tracker Tracker, lookback, interval time.Duration) ContentOptimizer {
	return &optimizer{
		events:      events,
		suggestions: suggestions,
		tracker:     tracker,
		lookback:    lookback,
		interval:    interval,
		now:         time.Now,
	}
}

func (o *optimizer) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stop != nil {
		return
	}
	stop := make(chan struct{})
	o.stop = stop
	go o.run(stop)
	log.Println("[INFO] content optimizer started")
}

func (o *optimizer) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stop == nil {
		return
	}
	close(o.stop)
	o.stop = nil
}

func (o *optimizer) run(stop chan struct{}) {
	o.runOnce()

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			o.runOnce()
		case <-stop:
			return
		}
	}
}

func (o *optimizer) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), optimizeRunTimeout)
	defer cancel()

	if err := o.OptimizeContent(ctx); err != nil {
		log.Printf("[ERROR] content optimization failed: %v", err)
	}
}

func (o *optimizer) OptimizeContent(ctx context.Context) error {
	events, err := o.events.ListSince(ctx, o.now().Add(-o.lookback))
	if err != nil {
		o.tracker.TrackEvent(model.EventData{
			Name:       "content_optimization_failed",
			Properties: map[string]any{"error": err.Error()},
		}, model.ClientContext{})
		return fmt.Errorf("load trailing events: %w", err)
	}

	metrics := ComputePageMetrics(events)

	paths := make([]string, 0, len(metrics))
	for path := range metrics {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	applied := 0
	for _, path := range paths {
		m := metrics[path]
		if isHighPerforming(m) {
			continue
		}
		suggestion, ok := suggestionFor(m)
		if !ok {
			continue
		}
		if o.persistSuggestion(ctx, path, suggestion) {
			applied++
		}
	}

	o.tracker.TrackEvent(model.EventData{
		Name: "content_optimization_complete",
		Properties: map[string]any{
			"pagesOptimized": applied,
		},
	}, model.ClientContext{})
	return nil
}

func (o *optimizer) UpdateMetrics(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	events, err := o.events.ListSince(ctx, o.now().Add(-o.lookback))
	if err != nil {
		return fmt.Errorf("load trailing events: %w", err)
	}

	m, ok := ComputePageMetrics(events)[path]
	if !ok || isHighPerforming(m) {
		return nil
	}
	suggestion, ok := suggestionFor(m)
	if !ok {
		return nil
	}
	if !o.persistSuggestion(ctx, path, suggestion) {
		return fmt.Errorf("persist suggestion for %s", path)
	}
	return nil
}

// persistSuggestion writes one page's suggestion. A failure is reported
// individually and never aborts the remaining updates in a batch.
func (o *optimizer) persistSuggestion(ctx context.Context, path, suggestion string) bool {
	err := o.suggestions.Create(ctx, model.ContentSuggestion{
		Path:       path,
		Suggestion: suggestion,
		AppliedAt:  o.now().UTC(),
	})
	if err != nil {
		log.Printf("[ERROR] failed to apply content update for %s: %v", path, err)
		o.tracker.TrackEvent(model.EventData{
			Name: "content_update_failed",
			Properties: map[string]any{
				"path":  path,
				"error": err.Error(),
			},
		}, model.ClientContext{})
		return false
	}

	o.tracker.TrackEvent(model.EventData{
		Name: "content_update_applied",
		Properties: map[string]any{
			"path": path,
		},
	}, model.ClientContext{})
	return true
}

// ComputePageMetrics folds events into per-page engagement aggregates.
// It is a fresh fold over the window, not an incremental update.
func ComputePageMetrics(events []model.Event) map[string]model.PageMetrics {
	type accum struct {
		views       int
		bounces     int
		conversions int
		timeTotal   float64
	}
	byPath := make(map[string]*accum)

	for _, e := range events {
		path := e.PropString("path")
		if path == "" {
			continue
		}
		acc := byPath[path]
		if acc == nil {
			acc = &accum{}
			byPath[path] = acc
		}

		switch e.Name {
		case model.EventPageView:
			acc.views++
			spent := e.PropFloat("timeSpentOnPage")
			acc.timeTotal += spent
			if spent < bounceThresholdSeconds {
				acc.bounces++
			}
		case model.EventFormSubmission:
			if e.PropBool("success") {
				acc.conversions++
			}
		}
	}

	metrics := make(map[string]model.PageMetrics, len(byPath))
	for path, acc := range byPath {
		if acc.views == 0 {
			continue
		}
		metrics[path] = model.PageMetrics{
			PageViews:      acc.views,
			TimeOnPage:     acc.timeTotal / float64(acc.views),
			BounceRate:     float64(acc.bounces) / float64(acc.views),
			ConversionRate: float64(acc.conversions) / float64(acc.views),
		}
	}
	return metrics
}

func isHighPerforming(m model.PageMetrics) bool {
	return m.TimeOnPage > highTimeOnPageSeconds &&
		m.BounceRate < highBounceRateCeiling &&
		m.ConversionRate > highConversionFloor
}

// suggestionFor picks the suggestion for an underperforming page. When
// several thresholds fail, later rules overwrite earlier ones, keeping
// the most actionable suggestion.
func suggestionFor(m model.PageMetrics) (string, bool) {
	suggestion := ""

	if m.BounceRate > poorBounceRateFloor {
		suggestion = "Consider improving page content and user engagement."
	}
	if m.TimeOnPage < poorTimeOnPageSeconds {
		suggestion = "Consider adding more engaging content or interactive elements."
	}
	if m.ConversionRate < poorConversionCeiling {
		suggestion = "Review call-to-action placement and effectiveness."
	}

	return suggestion, suggestion != ""
}
