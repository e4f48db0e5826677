package controller

import (
	"github.com/gofiber/fiber/v2"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/service"
)

// EventController exposes HTTP handlers for event ingestion.
type EventController interface {
	CreateEvent(c *fiber.Ctx) error
}

type eventController struct {
	tracker service.Tracker
}

// NewEventController builds an EventController.
func NewEventController(tracker service.Tracker) EventController {
	return &eventController{tracker: tracker}
}

// CreateEvent accepts a single tracked event. Recording is fire-and-forget,
// so a well-formed payload is always accepted.
func (h *eventController) CreateEvent(c *fiber.Ctx) error {
	var req model.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	if req.Client.UserAgent == "" {
		req.Client.UserAgent = c.Get(fiber.HeaderUserAgent)
	}

	h.tracker.TrackEvent(model.EventData{
		Name:       req.Name,
		Category:   req.Category,
		Value:      req.Value,
		Properties: req.Properties,
	}, req.Client)

	return c.SendStatus(fiber.StatusAccepted)
}
