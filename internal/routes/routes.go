package routes

import (
	"visitor-insights-service/internal/controller"

	"github.com/gofiber/fiber/v2"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(
	app *fiber.App,
	eventController controller.EventController,
	leadController controller.LeadController,
	chatController controller.ChatController,
	syncController controller.SyncController,
) {
	app.Post("/events", eventController.CreateEvent)

	app.Post("/bookings", leadController.CreateBooking)
	app.Post("/enquiries", leadController.CreateEnquiry)

	app.Get("/chat/greeting", chatController.GetGreeting)
	app.Post("/chat/messages", chatController.PostMessage)

	app.Get("/sync", syncController.GetState)
	app.Post("/sync/force", syncController.ForceSync)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
