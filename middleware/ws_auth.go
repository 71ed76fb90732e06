package middleware

import (
	"log"
	"strings"

	"fitness-club-backend/services"

	"github.com/gofiber/fiber/v2"
)

// WSAuthMiddleware authenticates websocket upgrade requests via a `token`
// query parameter, since browsers cannot set headers on a WebSocket handshake.
//
// Usage:
//
//	app.Get("/ws", middleware.WSAuthMiddleware(authService), websocket.New(hub.Handler))
func WSAuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "missing token query parameter",
			})
		}

		userID, role, err := auth.VerifyToken(token)
		if err != nil {
			log.Printf("[WSAuth] ❌ token rejected: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("user_role", role)
		return c.Next()
	}
}
