package handlers

import (
	"strconv"

	"fitness-club-backend/middleware"
	"fitness-club-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, authService *services.AuthService, notificationService *services.NotificationService) {
	securedGroup := app.Group("/notifications", middleware.UserContextMiddleware(authService))

	securedGroup.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		unreadOnly := c.Query("unread") == "true"
		limit, _ := strconv.Atoi(c.Query("limit", "50"))

		notifications, err := notificationService.List(userID, unreadOnly, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list notifications",
				"cause": err.Error(),
			})
		}
		return c.JSON(notifications)
	})

	securedGroup.Post("/:id/read", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := notificationService.MarkRead(userID, c.Params("id")); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "marked read"})
	})

	securedGroup.Post("/read-all", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := notificationService.MarkAllRead(userID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark notifications read",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "all marked read"})
	})
}
