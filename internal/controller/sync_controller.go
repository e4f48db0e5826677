package controller

import (
	"github.com/gofiber/fiber/v2"

	"visitor-insights-service/internal/sync"
)

// SyncController exposes the coordinator's state and manual sync trigger.
type SyncController interface {
	GetState(c *fiber.Ctx) error
	ForceSync(c *fiber.Ctx) error
}

type syncController struct {
	coordinator *sync.Coordinator
}

// NewSyncController builds a SyncController.
func NewSyncController(coordinator *sync.Coordinator) SyncController {
	return &syncController{coordinator: coordinator}
}

// GetState returns the current sync state.
func (h *syncController) GetState(c *fiber.Ctx) error {
	return c.JSON(h.coordinator.GetState())
}

// ForceSync runs report generation and content optimization immediately,
// bypassing the debounce window. The resulting state is returned either way.
func (h *syncController) ForceSync(c *fiber.Ctx) error {
	if err := h.coordinator.ForceSync(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(h.coordinator.GetState())
	}
	return c.JSON(h.coordinator.GetState())
}
