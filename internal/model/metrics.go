package model

import "time"

// PageMetrics is a derived per-page engagement aggregate, recomputed as a
// fresh fold over the lookback window on every optimizer run.
type PageMetrics struct {
	PageViews      int
	TimeOnPage     float64 // average seconds per view
	BounceRate     float64 // fraction of views under the bounce threshold
	ConversionRate float64 // successful form submissions / page views
}

// ContentSuggestion is a persisted recommendation for an underperforming page.
type ContentSuggestion struct {
	Path       string
	Suggestion string
	AppliedAt  time.Time
}
