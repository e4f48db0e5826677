package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/service"
	"visitor-insights-service/internal/testdata/mockservice"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ControllerTestSuite struct {
	suite.Suite
	app     *fiber.App
	tracker *mockservice.Tracker
	leads   *mockservice.LeadService
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (s *ControllerTestSuite) SetupTest() {
	s.tracker = &mockservice.Tracker{}
	s.leads = &mockservice.LeadService{}

	eventCtrl := NewEventController(s.tracker)
	leadCtrl := NewLeadController(s.leads)

	s.app = fiber.New()
	s.app.Post("/events", eventCtrl.CreateEvent)
	s.app.Post("/bookings", leadCtrl.CreateBooking)
	s.app.Post("/enquiries", leadCtrl.CreateEnquiry)
}

func (s *ControllerTestSuite) TestCreateEvent_Success() {
	s.tracker.On("TrackEvent", mock.MatchedBy(func(data model.EventData) bool {
		return data.Name == "page_view" && data.Category == "engagement"
	}), mock.MatchedBy(func(client model.ClientContext) bool {
		return client.VisitorID == "v1" && client.Path == "/packages"
	})).Return()

	resp := s.performRequest("/events", model.TrackRequest{
		Name:     "page_view",
		Category: "engagement",
		Client:   model.ClientContext{VisitorID: "v1", Path: "/packages", UserAgent: "test-agent"},
	})

	require.Equal(s.T(), http.StatusAccepted, resp.StatusCode)
	s.tracker.AssertExpectations(s.T())
}

func (s *ControllerTestSuite) TestCreateEvent_UserAgentFallsBackToHeader() {
	s.tracker.On("TrackEvent", mock.Anything, mock.MatchedBy(func(client model.ClientContext) bool {
		return client.UserAgent == "header-agent"
	})).Return()

	payload, _ := json.Marshal(model.TrackRequest{Name: "click"})
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "header-agent")
	resp, err := s.app.Test(req, -1)

	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusAccepted, resp.StatusCode)
	s.tracker.AssertExpectations(s.T())
}

func (s *ControllerTestSuite) TestCreateEvent_InvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := s.app.Test(req, -1)
	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}

func (s *ControllerTestSuite) TestCreateEvent_MissingName() {
	resp := s.performRequest("/events", model.TrackRequest{Category: "engagement"})
	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
	s.tracker.AssertNotCalled(s.T(), "TrackEvent", mock.Anything, mock.Anything)
}

func (s *ControllerTestSuite) TestCreateBooking_Success() {
	booking := model.Booking{ID: "b1", Status: model.LeadPending}
	s.leads.On("SubmitBooking", mock.Anything, mock.Anything).Return(booking, true, nil)

	resp := s.performRequest("/bookings", model.BookingRequest{
		Name: "Asha Verma", Email: "asha@example.com",
		PackageName: "River Rafting", TravelDate: "2026-09-15", Travelers: 2,
	})

	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(s.T(), "b1", body["id"])
	require.Equal(s.T(), true, body["email_queued"])
}

func (s *ControllerTestSuite) TestCreateBooking_ValidationError() {
	s.leads.On("SubmitBooking", mock.Anything, mock.Anything).
		Return(model.Booking{}, false, &service.ValidationError{Message: "name is required"})

	resp := s.performRequest("/bookings", model.BookingRequest{})

	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}

func (s *ControllerTestSuite) TestCreateBooking_InternalError() {
	s.leads.On("SubmitBooking", mock.Anything, mock.Anything).
		Return(model.Booking{}, false, errors.New("insert failed"))

	resp := s.performRequest("/bookings", model.BookingRequest{Name: "Asha Verma"})

	require.Equal(s.T(), http.StatusInternalServerError, resp.StatusCode)
}

func (s *ControllerTestSuite) TestCreateEnquiry_Success() {
	enquiry := model.Enquiry{ID: "e1", Status: model.LeadPending}
	s.leads.On("SubmitEnquiry", mock.Anything, mock.Anything).Return(enquiry, false, nil)

	resp := s.performRequest("/enquiries", model.EnquiryRequest{
		Name: "Ravi Kumar", Email: "ravi@example.com", Message: "Group discounts?",
	})

	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(s.T(), "e1", body["id"])
	require.Equal(s.T(), false, body["email_queued"])
}

func (s *ControllerTestSuite) performRequest(path string, body any) *http.Response {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	require.NoError(s.T(), err)
	return resp
}
