package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/testdata/mockservice"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CoordinatorTestSuite struct {
	suite.Suite
	mockTracker   *mockservice.Tracker
	mockReports   *mockservice.ReportGenerator
	mockOptimizer *mockservice.ContentOptimizer
	coordinator   *Coordinator
	clock         time.Time
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.mockTracker = new(mockservice.Tracker)
	s.mockReports = new(mockservice.ReportGenerator)
	s.mockOptimizer = new(mockservice.ContentOptimizer)

	s.clock = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.coordinator = NewCoordinator(s.mockTracker, s.mockReports, s.mockOptimizer, 6*time.Hour)
	s.coordinator.now = func() time.Time { return s.clock }
	s.coordinator.state.LastSync = s.clock
}

func (s *CoordinatorTestSuite) TearDownTest() {
	s.mockTracker.AssertExpectations(s.T())
	s.mockReports.AssertExpectations(s.T())
	s.mockOptimizer.AssertExpectations(s.T())
}

func (s *CoordinatorTestSuite) expectTracked(name string) {
	s.mockTracker.On("TrackEvent", mock.MatchedBy(func(data model.EventData) bool {
		return data.Name == name
	}), mock.Anything).Return()
}

func (s *CoordinatorTestSuite) bookingChange() model.TableChange {
	return model.TableChange{
		Table:     "bookings",
		Operation: "INSERT",
		Row:       map[string]any{"id": "b1"},
	}
}

func (s *CoordinatorTestSuite) TestInitialStateIsIdle() {
	state := s.coordinator.GetState()
	s.Equal(model.SyncIdle, state.Status)
	s.Empty(state.Error)
	s.Equal(s.clock, state.LastSync)
}

func (s *CoordinatorTestSuite) TestBookingChangeWithinDebounceSkipsReport() {
	s.expectTracked("booking_change")

	s.clock = s.clock.Add(2 * time.Hour)
	s.coordinator.HandleBookingChange(context.Background(), s.bookingChange())

	s.mockReports.AssertNotCalled(s.T(), "GenerateReport", mock.Anything)
	s.Equal(model.SyncIdle, s.coordinator.GetState().Status)
}

func (s *CoordinatorTestSuite) TestBookingChangeAfterDebounceGeneratesReport() {
	s.expectTracked("booking_change")
	s.mockReports.On("GenerateReport", mock.Anything).Return(nil)

	s.clock = s.clock.Add(7 * time.Hour)
	s.coordinator.HandleBookingChange(context.Background(), s.bookingChange())

	state := s.coordinator.GetState()
	s.Equal(model.SyncIdle, state.Status)
	s.Equal(s.clock, state.LastSync)
}

func (s *CoordinatorTestSuite) TestBookingChangeReportFailureSetsErrorState() {
	s.expectTracked("booking_change")
	s.expectTracked("sync_error")
	s.mockReports.On("GenerateReport", mock.Anything).Return(errors.New("db down"))

	s.clock = s.clock.Add(7 * time.Hour)
	s.coordinator.HandleBookingChange(context.Background(), s.bookingChange())

	state := s.coordinator.GetState()
	s.Equal(model.SyncError, state.Status)
	s.Equal("db down", state.Error)
}

func (s *CoordinatorTestSuite) TestErrorStateClearsOnNextAttempt() {
	s.expectTracked("booking_change")
	s.expectTracked("sync_error")
	s.mockReports.On("GenerateReport", mock.Anything).Return(errors.New("db down")).Once()
	s.mockReports.On("GenerateReport", mock.Anything).Return(nil).Once()

	s.clock = s.clock.Add(7 * time.Hour)
	s.coordinator.HandleBookingChange(context.Background(), s.bookingChange())
	s.Equal(model.SyncError, s.coordinator.GetState().Status)

	s.clock = s.clock.Add(7 * time.Hour)
	s.coordinator.HandleBookingChange(context.Background(), s.bookingChange())

	state := s.coordinator.GetState()
	s.Equal(model.SyncIdle, state.Status)
	s.Empty(state.Error)
}

func (s *CoordinatorTestSuite) TestEnquiryChangeFromWebsiteRefreshesPageMetrics() {
	s.expectTracked("enquiry_change")
	s.mockOptimizer.On("UpdateMetrics", mock.Anything, "/contact").Return(nil)

	s.coordinator.HandleEnquiryChange(context.Background(), model.TableChange{
		Table:     "enquiries",
		Operation: "INSERT",
		Row: map[string]any{
			"id": "e1", "source": "website", "source_page": "/contact",
		},
	})

	s.Equal(model.SyncIdle, s.coordinator.GetState().Status)
}

func (s *CoordinatorTestSuite) TestEnquiryChangeFromChatSkipsMetrics() {
	s.expectTracked("enquiry_change")

	s.coordinator.HandleEnquiryChange(context.Background(), model.TableChange{
		Table:     "enquiries",
		Operation: "INSERT",
		Row:       map[string]any{"id": "e2", "source": "chat"},
	})

	s.mockOptimizer.AssertNotCalled(s.T(), "UpdateMetrics", mock.Anything, mock.Anything)
}

func (s *CoordinatorTestSuite) TestAnalyticsPageViewRefreshesPageMetrics() {
	s.mockOptimizer.On("UpdateMetrics", mock.Anything, "/packages").Return(nil)

	s.coordinator.HandleAnalyticsEvent(context.Background(), model.TableChange{
		Table:     "analytics_events",
		Operation: "INSERT",
		Row: map[string]any{
			"event_name": model.EventPageView,
			"properties": map[string]any{"path": "/packages"},
		},
	})

	// Analytics rows do not move the shared state machine.
	s.Equal(model.SyncIdle, s.coordinator.GetState().Status)
}

func (s *CoordinatorTestSuite) TestAnalyticsConversionIsReEmitted() {
	s.expectTracked("conversion_recorded")

	s.coordinator.HandleAnalyticsEvent(context.Background(), model.TableChange{
		Table:     "analytics_events",
		Operation: "INSERT",
		Row: map[string]any{
			"event_name": model.EventConversion,
			"properties": map[string]any{"value": 19999.0},
		},
	})
}

func (s *CoordinatorTestSuite) TestSubscribersNotifiedInRegistrationOrder() {
	s.expectTracked("booking_change")

	var order []string
	s.coordinator.Subscribe(func(state model.SyncState) {
		order = append(order, "first:"+string(state.Status))
	})
	s.coordinator.Subscribe(func(state model.SyncState) {
		order = append(order, "second:"+string(state.Status))
	})

	s.coordinator.HandleBookingChange(context.Background(), s.bookingChange())

	s.Equal([]string{
		"first:syncing", "second:syncing",
		"first:idle", "second:idle",
	}, order)
}

func (s *CoordinatorTestSuite) TestUnsubscribeStopsNotifications() {
	s.expectTracked("booking_change")

	calls := 0
	unsubscribe := s.coordinator.Subscribe(func(model.SyncState) { calls++ })
	unsubscribe()

	s.coordinator.HandleBookingChange(context.Background(), s.bookingChange())

	s.Zero(calls)
}

func (s *CoordinatorTestSuite) TestForceSyncIgnoresDebounce() {
	s.mockReports.On("GenerateReport", mock.Anything).Return(nil)
	s.mockOptimizer.On("OptimizeContent", mock.Anything).Return(nil)

	// No time has passed since LastSync; a booking change would skip.
	err := s.coordinator.ForceSync(context.Background())

	s.NoError(err)
	s.Equal(model.SyncIdle, s.coordinator.GetState().Status)
}

func (s *CoordinatorTestSuite) TestForceSyncOptimizerFailure() {
	s.expectTracked("sync_error")
	s.mockReports.On("GenerateReport", mock.Anything).Return(nil)
	s.mockOptimizer.On("OptimizeContent", mock.Anything).Return(errors.New("optimize failed"))

	err := s.coordinator.ForceSync(context.Background())

	s.Error(err)
	s.Equal(model.SyncError, s.coordinator.GetState().Status)
}

func (s *CoordinatorTestSuite) TestRunDailyReportMovesStateMachine() {
	s.mockReports.On("GenerateReport", mock.Anything).Return(nil)

	var statuses []model.SyncStatus
	s.coordinator.Subscribe(func(state model.SyncState) {
		statuses = append(statuses, state.Status)
	})

	s.NoError(s.coordinator.RunDailyReport(context.Background()))
	s.Equal([]model.SyncStatus{model.SyncSyncing, model.SyncIdle}, statuses)
}
