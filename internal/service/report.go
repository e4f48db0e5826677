package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/repository"
)

// ReportGenerator aggregates the current day's events into a summary and
// hands it to the notification dispatcher.
type ReportGenerator interface {
	GenerateReport(ctx context.Context) error
}

type reporter struct {
	events     repository.EventRepository
	dispatcher Dispatcher
	now        func() time.Time
}

// NewReporter constructs a ReportGenerator.
func NewReporter(events repository.EventRepository, dispatcher Dispatcher) ReportGenerator {
	return &reporter{
		events:     events,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// GenerateReport queries all events since local midnight, folds them into
// DailyStats and records an analytics notification intent. A day with no
// events produces a degenerate summary rather than an error.
func (r *reporter) GenerateReport(ctx context.Context) error {
	now := r.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	events, err := r.events.ListSince(ctx, midnight)
	if err != nil {
		return fmt.Errorf("load today's events: %w", err)
	}

	stats := BuildDailyStats(events)

	intent := model.NotificationIntent{
		Type:    model.NotificationAnalytics,
		Subject: fmt.Sprintf("Analytics Report - %s", now.Format("02/01/2006")),
		Payload: model.NotificationPayload{
			Name:        "Daily Analytics Report",
			BookingDate: now.Format(time.RFC3339),
			Message:     FormatReportHTML(stats, now),
		},
	}

	if !r.dispatcher.Send(ctx, intent) {
		return errors.New("report notification was not recorded")
	}
	return nil
}

// BuildDailyStats folds a day's events into the report aggregate.
func BuildDailyStats(events []model.Event) model.DailyStats {
	stats := model.DailyStats{TopPages: []model.PageCount{}}

	sessions := make(map[string]bool)
	sessionDurations := make(map[string]float64) // first-seen duration, ms
	pageViews := make(map[string]int)
	conversions := 0

	for _, e := range events {
		sessionID := e.PropString("sessionId")
		if sessionID != "" {
			sessions[sessionID] = true
			if _, seen := sessionDurations[sessionID]; !seen {
				sessionDurations[sessionID] = e.PropFloat("sessionDuration")
			}
		}

		switch e.Name {
		case model.EventPageView:
			stats.TotalVisits++
			if path := e.PropString("path"); path != "" {
				pageViews[path]++
			}
		case model.EventBookingComplete:
			stats.BookingCount++
			conversions++
		case model.EventFormSubmission:
			if e.PropBool("success") {
				conversions++
			}
			if e.PropString("formId") == "enquiry" {
				stats.EnquiryCount++
			}
		}
	}

	stats.UniqueVisitors = len(sessions)

	if len(sessionDurations) > 0 {
		var total float64
		for _, d := range sessionDurations {
			total += d
		}
		stats.AverageTimeOnSite = total / float64(len(sessionDurations)) / 1000
	}

	if stats.UniqueVisitors > 0 {
		stats.ConversionRate = float64(conversions) / float64(stats.UniqueVisitors) * 100
	}

	for path, views := range pageViews {
		stats.TopPages = append(stats.TopPages, model.PageCount{Path: path, Views: views})
	}
	sort.Slice(stats.TopPages, func(i, j int) bool {
		if stats.TopPages[i].Views != stats.TopPages[j].Views {
			return stats.TopPages[i].Views > stats.TopPages[j].Views
		}
		return stats.TopPages[i].Path < stats.TopPages[j].Path
	})
	if len(stats.TopPages) > 5 {
		stats.TopPages = stats.TopPages[:5]
	}

	return stats
}

// FormatReportHTML renders the emailed report body.
func FormatReportHTML(stats model.DailyStats, date time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>Daily Analytics Report - %s</h2>\n", date.Format("02/01/2006"))
	b.WriteString("<h3>Overview</h3>\n<ul>\n")
	fmt.Fprintf(&b, "<li>Total Visits: %d</li>\n", stats.TotalVisits)
	fmt.Fprintf(&b, "<li>Unique Visitors: %d</li>\n", stats.UniqueVisitors)
	fmt.Fprintf(&b, "<li>Average Time on Site: %.0f seconds</li>\n", stats.AverageTimeOnSite)
	fmt.Fprintf(&b, "<li>Conversion Rate: %.2f%%</li>\n", stats.ConversionRate)
	b.WriteString("</ul>\n<h3>Conversions</h3>\n<ul>\n")
	fmt.Fprintf(&b, "<li>Bookings: %d</li>\n", stats.BookingCount)
	fmt.Fprintf(&b, "<li>Enquiries: %d</li>\n", stats.EnquiryCount)
	b.WriteString("</ul>\n<h3>Top Pages</h3>\n<ul>\n")
	for _, page := range stats.TopPages {
		fmt.Fprintf(&b, "<li>%s: %d views</li>\n", page.Path, page.Views)
	}
	b.WriteString("</ul>\n")

	return b.String()
}
