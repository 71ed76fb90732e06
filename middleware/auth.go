package middleware

import (
	"log"
	"strings"

	"fitness-club-backend/services"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware parses the Authorization bearer token and attaches
// user identity to the request context. All member-facing routes sit behind it.
func UserContextMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing Authorization header",
			})
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, role, err := auth.VerifyToken(token)
		if err != nil {
			log.Printf("❌ [AUTH] token rejected for %s: %v", c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("user_role", role)
		return c.Next()
	}
}

// RequireRole guards a route group to a single role (e.g. admin endpoints).
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r, _ := c.Locals("user_role").(string); r != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient role",
			})
		}
		return c.Next()
	}
}
