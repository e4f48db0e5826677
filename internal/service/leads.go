package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/repository"
)

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// LeadService captures booking and enquiry leads. The business row is the
// primary write: its failure is surfaced to the caller. The notification
// and the tracked form submission that follow are best-effort.
type LeadService interface {
	// SubmitBooking persists a booking request. The returned bool
	// reports whether the notification intent was recorded.
	SubmitBooking(ctx context.Context, req model.BookingRequest) (model.Booking, bool, error)

	// SubmitEnquiry persists an enquiry.
	SubmitEnquiry(ctx context.Context, req model.EnquiryRequest) (model.Enquiry, bool, error)
}

type leadService struct {
	bookings   repository.BookingRepository
	enquiries  repository.EnquiryRepository
	dispatcher Dispatcher
	tracker    Tracker
}

// NewLeadService constructs a LeadService.
func NewLeadService(bookings repository.BookingRepository, enquiries repository.EnquiryRepository, dispatcher Dispatcher, tracker Tracker) LeadService {
	return &leadService{
		bookings:   bookings,
		enquiries:  enquiries,
		dispatcher: dispatcher,
		tracker:    tracker,
	}
}

func (s *leadService) SubmitBooking(ctx context.Context, req model.BookingRequest) (model.Booking, bool, error) {
	if req.Name == "" {
		return model.Booking{}, false, &ValidationError{Message: "name is required"}
	}
	if req.Email == "" {
		return model.Booking{}, false, &ValidationError{Message: "email is required"}
	}
	if req.PackageName == "" {
		return model.Booking{}, false, &ValidationError{Message: "package_name is required"}
	}
	if req.TravelDate == "" {
		return model.Booking{}, false, &ValidationError{Message: "travel_date is required"}
	}
	if req.Travelers < 1 {
		return model.Booking{}, false, &ValidationError{Message: "travelers must be at least 1"}
	}

	booking := model.Booking{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		AltPhone:        req.AltPhone,
		PackageName:     req.PackageName,
		PackageType:     req.PackageType,
		Location:        req.Location,
		Price:           req.Price,
		TravelDate:      req.TravelDate,
		Travelers:       req.Travelers,
		SpecialRequests: req.SpecialRequests,
		Status:          model.LeadPending,
		SourcePage:      req.Client.Path,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.tracker.TrackFormSubmission(req.Client, "booking", false)
		return model.Booking{}, false, fmt.Errorf("create booking: %w", err)
	}

	queued := s.dispatcher.Send(ctx, model.NotificationIntent{
		Type:    model.NotificationBooking,
		Subject: fmt.Sprintf("New %s Booking Request: %s", req.PackageType, req.PackageName),
		Payload: model.NotificationPayload{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			AltPhone:    req.AltPhone,
			PackageName: req.PackageName,
			BookingDate: req.TravelDate,
			Travelers:   req.Travelers,
			Price:       req.Price,
			Message:     bookingMessage(req),
		},
	})

	s.tracker.TrackFormSubmission(req.Client, "booking", true)
	return booking, queued, nil
}

func (s *leadService) SubmitEnquiry(ctx context.Context, req model.EnquiryRequest) (model.Enquiry, bool, error) {
	if req.Name == "" {
		return model.Enquiry{}, false, &ValidationError{Message: "name is required"}
	}
	if req.Email == "" {
		return model.Enquiry{}, false, &ValidationError{Message: "email is required"}
	}
	if req.Message == "" {
		return model.Enquiry{}, false, &ValidationError{Message: "message is required"}
	}

	enquiry := model.Enquiry{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    req.Subject,
		Message:    req.Message,
		Status:     model.LeadPending,
		Source:     "website",
		SourcePage: req.Client.Path,
	}

	if err := s.enquiries.Create(ctx, enquiry); err != nil {
		s.tracker.TrackFormSubmission(req.Client, "enquiry", false)
		return model.Enquiry{}, false, fmt.Errorf("create enquiry: %w", err)
	}

	queued := s.dispatcher.Send(ctx, model.NotificationIntent{
		Type:    model.NotificationEnquiry,
		Subject: req.Subject,
		Payload: model.NotificationPayload{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			PackageName: "General Enquiry",
			Message:     req.Message,
		},
	})

	s.tracker.TrackFormSubmission(req.Client, "enquiry", true)
	return enquiry, queued, nil
}

func bookingMessage(req model.BookingRequest) string {
	lines := []string{
		fmt.Sprintf("%s BOOKING REQUEST", strings.ToUpper(req.PackageType)),
		"",
		"Item Details:",
		"Name: " + req.PackageName,
		"Type: " + req.PackageType,
		"Location: " + req.Location,
		"Price: " + req.Price,
		"Travel Date: " + req.TravelDate,
		"",
		"Customer Details:",
		"Name: " + req.Name,
		"Email: " + req.Email,
		"Phone: " + req.Phone,
		"Alt Phone: " + orNA(req.AltPhone),
		fmt.Sprintf("Number of Travelers: %d", req.Travelers),
		"",
		"Special Requests:",
		orNone(req.SpecialRequests),
	}
	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
