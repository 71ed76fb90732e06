package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GatewayAuthMiddleware validates the shared service token when the backend
// sits behind an API gateway. Enabled only if CLUB_SERVICE_TOKEN is set;
// standalone deployments skip it.
func GatewayAuthMiddleware() fiber.Handler {
	expectedToken := os.Getenv("CLUB_SERVICE_TOKEN")

	return func(c *fiber.Ctx) error {
		if expectedToken == "" {
			return c.Next()
		}

		token := strings.TrimPrefix(c.Get("X-Service-Token"), "Bearer ")
		if token != expectedToken {
			log.Printf("🚫 [GATEWAY] invalid service token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid gateway service token",
			})
		}
		return c.Next()
	}
}
