package handlers

import (
	"errors"
	"time"

	"fitness-club-backend/middleware"
	"fitness-club-backend/models"
	"fitness-club-backend/services"
	"fitness-club-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, authService *services.AuthService, challengeService *services.ChallengeService) {
	securedGroup := app.Group("/challenges", middleware.UserContextMiddleware(authService))

	securedGroup.Get("/", func(c *fiber.Ctx) error {
		challenges, err := challengeService.ActiveChallenges()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list challenges",
				"cause": err.Error(),
			})
		}
		return c.JSON(challenges)
	})

	securedGroup.Post("/:id/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		result, err := challengeService.CompleteChallenge(userID, c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrChallengeInactive):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, services.ErrChallengeCompleted):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to complete challenge",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{
			"message":     "challenge completed",
			"progression": result,
		})
	})

	adminGroup := app.Group("/admin/challenges",
		middleware.UserContextMiddleware(authService),
		middleware.RequireRole(string(models.RoleAdmin)),
	)

	adminGroup.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			Name        string    `json:"name" validate:"required,max=100"`
			Description string    `json:"description" validate:"max=2000"`
			RewardXP    int64     `json:"reward_xp" validate:"min=0,max=100000"`
			StartsAt    time.Time `json:"starts_at" validate:"required"`
			EndsAt      time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := utils.Validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "validation failed",
				"fields": utils.ValidationErrors(err),
			})
		}

		challenge, err := challengeService.CreateChallenge(&models.Challenge{
			Name:        req.Name,
			Description: req.Description,
			RewardXP:    req.RewardXP,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create challenge",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(challenge)
	})
}
