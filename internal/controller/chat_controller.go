package controller

import (
	"github.com/gofiber/fiber/v2"

	"visitor-insights-service/internal/chat"
	"visitor-insights-service/internal/model"
)

// ChatController exposes the chat widget endpoint.
type ChatController interface {
	PostMessage(c *fiber.Ctx) error
	GetGreeting(c *fiber.Ctx) error
}

type chatController struct {
	responder *chat.Responder
}

// NewChatController builds a ChatController.
func NewChatController(responder *chat.Responder) ChatController {
	return &chatController{responder: responder}
}

// PostMessage answers one user message.
func (h *chatController) PostMessage(c *fiber.Ctx) error {
	var req model.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json payload")
	}
	if req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	reply := h.responder.Reply(c.Context(), req)
	return c.JSON(model.ChatResponse{Reply: reply})
}

// GetGreeting returns the canned conversation opener.
func (h *chatController) GetGreeting(c *fiber.Ctx) error {
	return c.JSON(model.ChatResponse{Reply: chat.Greeting})
}
