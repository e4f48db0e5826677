package mockservice

import (
	"context"

	"visitor-insights-service/internal/model"

	"github.com/stretchr/testify/mock"
)

// Compliance with the service interfaces is asserted in the service
// package's tests; importing it here would create an import cycle.

type Tracker struct {
	mock.Mock
}

func (m *Tracker) TrackEvent(data model.EventData, client model.ClientContext) {
	m.Called(data, client)
}

func (m *Tracker) TrackPageView(client model.ClientContext) {
	m.Called(client)
}

func (m *Tracker) TrackClick(client model.ClientContext, element, category string) {
	m.Called(client, element, category)
}

func (m *Tracker) TrackFormSubmission(client model.ClientContext, formID string, success bool) {
	m.Called(client, formID, success)
}

func (m *Tracker) TrackBookingStart(client model.ClientContext) {
	m.Called(client)
}

func (m *Tracker) TrackBookingComplete(client model.ClientContext, value float64) {
	m.Called(client, value)
}

type Dispatcher struct {
	mock.Mock
}

func (m *Dispatcher) Send(ctx context.Context, intent model.NotificationIntent) bool {
	args := m.Called(ctx, intent)
	return args.Bool(0)
}

type ReportGenerator struct {
	mock.Mock
}

func (m *ReportGenerator) GenerateReport(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type ContentOptimizer struct {
	mock.Mock
}

func (m *ContentOptimizer) Start() {
	m.Called()
}

func (m *ContentOptimizer) Stop() {
	m.Called()
}

func (m *ContentOptimizer) OptimizeContent(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *ContentOptimizer) UpdateMetrics(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

type LeadService struct {
	mock.Mock
}

func (m *LeadService) SubmitBooking(ctx context.Context, req model.BookingRequest) (model.Booking, bool, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Booking), args.Bool(1), args.Error(2)
}

func (m *LeadService) SubmitEnquiry(ctx context.Context, req model.EnquiryRequest) (model.Enquiry, bool, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Enquiry), args.Bool(1), args.Error(2)
}
