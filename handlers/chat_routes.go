package handlers

import (
	"strconv"

	"fitness-club-backend/middleware"
	"fitness-club-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChatRoutes(app *fiber.App, authService *services.AuthService, chatService *services.ChatService) {
	securedGroup := app.Group("/chat", middleware.UserContextMiddleware(authService))

	securedGroup.Get("/:room/history", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		messages, err := chatService.History(c.Params("room"), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load chat history",
				"cause": err.Error(),
			})
		}
		return c.JSON(messages)
	})

	securedGroup.Get("/online", func(c *fiber.Ctx) error {
		online, err := chatService.OnlineUsers(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load presence",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"online": online})
	})
}
