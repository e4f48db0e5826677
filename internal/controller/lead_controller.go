package controller

import (
	"github.com/gofiber/fiber/v2"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/service"
)

// LeadController exposes HTTP handlers for booking and enquiry forms.
type LeadController interface {
	CreateBooking(c *fiber.Ctx) error
	CreateEnquiry(c *fiber.Ctx) error
}

type leadController struct {
	leads service.LeadService
}

// NewLeadController builds a LeadController.
func NewLeadController(leads service.LeadService) LeadController {
	return &leadController{leads: leads}
}

// CreateBooking records a booking request. The notification email is
// best-effort: its failure is reported in the response, not as an error.
func (h *leadController) CreateBooking(c *fiber.Ctx) error {
	var req model.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	booking, queued, err := h.leads.SubmitBooking(c.Context(), req)
	if err != nil {
		if _, ok := err.(*service.ValidationError); ok {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to record booking request")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":           booking.ID,
		"status":       booking.Status,
		"email_queued": queued,
	})
}

// CreateEnquiry records an enquiry from the contact form.
func (h *leadController) CreateEnquiry(c *fiber.Ctx) error {
	var req model.EnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}

	enquiry, queued, err := h.leads.SubmitEnquiry(c.Context(), req)
	if err != nil {
		if _, ok := err.(*service.ValidationError); ok {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to record enquiry")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":           enquiry.ID,
		"status":       enquiry.Status,
		"email_queued": queued,
	})
}
