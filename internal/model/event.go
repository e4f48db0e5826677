package model

import (
	"time"
)

// Standard event names and categories used across the service.
const (
	EventPageView        = "page_view"
	EventClick           = "click"
	EventFormSubmission  = "form_submission"
	EventBookingStart    = "booking_start"
	EventBookingComplete = "booking_complete"
	EventConversion      = "conversion"

	CategoryEngagement  = "engagement"
	CategoryInteraction = "interaction"
	CategoryConversion  = "conversion"
)

// EventData is the caller-facing shape of a tracked event before
// enrichment. Category and Value are folded into the stored properties.
type EventData struct {
	Name       string
	Category   string
	Value      float64
	Properties map[string]any
}

// ClientContext carries browser-side details reported with an event.
// Internally generated events leave it zero-valued.
type ClientContext struct {
	VisitorID    string `json:"visitor_id"`
	URL          string `json:"url"`
	Path         string `json:"path"`
	Title        string `json:"title"`
	Referrer     string `json:"referrer"`
	UserAgent    string `json:"user_agent"`
	ScreenWidth  int    `json:"screen_width"`
	ScreenHeight int    `json:"screen_height"`
}

// Event is the enriched, immutable record persisted in the event store.
type Event struct {
	ID         string
	Name       string
	Properties map[string]any
	URL        string
	UserAgent  string
	Timestamp  time.Time
}

// TrackRequest is the incoming payload for POST /events.
type TrackRequest struct {
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Value      float64        `json:"value"`
	Properties map[string]any `json:"properties"`
	Client     ClientContext  `json:"client"`
}

// PropString reads a string property, tolerating absent or mistyped values.
func (e Event) PropString(key string) string {
	if v, ok := e.Properties[key].(string); ok {
		return v
	}
	return ""
}

// PropFloat reads a numeric property. JSON decoding yields float64 for
// all numbers, so that is the only concrete type checked besides int.
func (e Event) PropFloat(key string) float64 {
	switch v := e.Properties[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// PropBool reads a boolean property.
func (e Event) PropBool(key string) bool {
	v, ok := e.Properties[key].(bool)
	return ok && v
}
