package mockrepository

import (
	"context"
	"time"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

type EventRepository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.EventRepository = &EventRepository{}

func (m *EventRepository) Create(ctx context.Context, event model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) CreateBatch(ctx context.Context, events []model.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *EventRepository) ListSince(ctx context.Context, from time.Time) ([]model.Event, error) {
	args := m.Called(ctx, from)
	// Return type casting requires caution; ensure mocks are set up correctly in tests
	return args.Get(0).([]model.Event), args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

var _ repository.NotificationRepository = &NotificationRepository{}

func (m *NotificationRepository) Create(ctx context.Context, intent model.NotificationIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

type BookingRepository struct {
	mock.Mock
}

var _ repository.BookingRepository = &BookingRepository{}

func (m *BookingRepository) Create(ctx context.Context, booking model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type EnquiryRepository struct {
	mock.Mock
}

var _ repository.EnquiryRepository = &EnquiryRepository{}

func (m *EnquiryRepository) Create(ctx context.Context, enquiry model.Enquiry) error {
	args := m.Called(ctx, enquiry)
	return args.Error(0)
}

type SuggestionRepository struct {
	mock.Mock
}

var _ repository.SuggestionRepository = &SuggestionRepository{}

func (m *SuggestionRepository) Create(ctx context.Context, suggestion model.ContentSuggestion) error {
	args := m.Called(ctx, suggestion)
	return args.Error(0)
}
