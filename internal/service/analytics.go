package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/session"
)

// Tracker records analytics events. Recording is fire-and-forget: it
// never returns an error and never blocks the caller, because
// observability must not interfere with user flow.
type Tracker interface {
	TrackEvent(data model.EventData, client model.ClientContext)
	TrackPageView(client model.ClientContext)
	TrackClick(client model.ClientContext, element, category string)
	TrackFormSubmission(client model.ClientContext, formID string, success bool)
	TrackBookingStart(client model.ClientContext)
	TrackBookingComplete(client model.ClientContext, value float64)
}

type analytics struct {
	sessions *session.Registry
	worker   BatchEventWorker
	enabled  bool
	now      func() time.Time
}

// NewAnalytics constructs the event emitter. With enabled=false (dev
// mode) every call is a no-op so shared analytics data stays clean.
func NewAnalytics(sessions *session.Registry, worker BatchEventWorker, enabled bool) Tracker {
	return &analytics{
		sessions: sessions,
		worker:   worker,
		enabled:  enabled,
		now:      time.Now,
	}
}

// TrackEvent enriches the event with the visitor's session snapshot and
// client details, then hands it to the background writer.
func (a *analytics) TrackEvent(data model.EventData, client model.ClientContext) {
	if !a.enabled {
		return
	}

	tracker := a.sessions.Lookup(client.VisitorID)
	switch data.Name {
	case model.EventPageView:
		tracker.RecordPageView()
	case model.EventClick:
		tracker.RecordActivity()
	default:
		tracker.Touch()
	}
	snap := tracker.Snapshot()

	now := a.now()

	properties := make(map[string]any, len(data.Properties)+10)
	for k, v := range data.Properties {
		properties[k] = v
	}
	if data.Category != "" {
		properties["category"] = data.Category
	}
	if data.Value != 0 {
		properties["value"] = data.Value
	}
	if client.Path != "" {
		properties["path"] = client.Path
	}
	properties["sessionId"] = snap.ID
	properties["sessionDuration"] = snap.Duration(now).Milliseconds()
	properties["pageViews"] = snap.PageViews
	properties["interactions"] = snap.Interactions
	properties["referrer"] = client.Referrer
	properties["screenResolution"] = fmt.Sprintf("%dx%d", client.ScreenWidth, client.ScreenHeight)
	properties["deviceType"] = session.ClassifyDevice(client.UserAgent)
	properties["timeSpentOnPage"] = int(snap.Duration(now).Seconds())

	a.worker.Enqueue(model.Event{
		ID:         uuid.New().String(),
		Name:       data.Name,
		Properties: properties,
		URL:        client.URL,
		UserAgent:  client.UserAgent,
		Timestamp:  now.UTC(),
	})
}

// TrackPageView records a navigation to the client's current path.
func (a *analytics) TrackPageView(client model.ClientContext) {
	a.TrackEvent(model.EventData{
		Name:     model.EventPageView,
		Category: model.CategoryEngagement,
		Properties: map[string]any{
			"title": client.Title,
		},
	}, client)
}

// TrackClick records a click on a named element.
func (a *analytics) TrackClick(client model.ClientContext, element, category string) {
	if category == "" {
		category = model.CategoryInteraction
	}
	a.TrackEvent(model.EventData{
		Name:     model.EventClick,
		Category: category,
		Properties: map[string]any{
			"element": element,
		},
	}, client)
}

// TrackFormSubmission records a form submission attempt and its outcome.
func (a *analytics) TrackFormSubmission(client model.ClientContext, formID string, success bool) {
	a.TrackEvent(model.EventData{
		Name:     model.EventFormSubmission,
		Category: model.CategoryConversion,
		Properties: map[string]any{
			"formId":  formID,
			"success": success,
		},
	}, client)
}

// TrackBookingStart records the opening of the booking flow.
func (a *analytics) TrackBookingStart(client model.ClientContext) {
	a.TrackEvent(model.EventData{
		Name:     model.EventBookingStart,
		Category: model.CategoryConversion,
	}, client)
}

// TrackBookingComplete records a finished booking with its value. The
// value key is stored even when zero, so free bookings stay countable.
func (a *analytics) TrackBookingComplete(client model.ClientContext, value float64) {
	a.TrackEvent(model.EventData{
		Name:     model.EventBookingComplete,
		Category: model.CategoryConversion,
		Properties: map[string]any{
			"value": value,
		},
	}, client)
}
