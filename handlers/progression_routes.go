package handlers

import (
	"errors"

	"fitness-club-backend/middleware"
	"fitness-club-backend/models"
	"fitness-club-backend/services"
	"fitness-club-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressionRoutes(app *fiber.App, authService *services.AuthService, progressionService *services.ProgressionService, badgeService *services.BadgeService) {
	// Catalog is public: the UI shows all possible badges to everyone.
	app.Get("/badges/catalog", func(c *fiber.Ctx) error {
		return c.JSON(progressionService.GetBadgeCatalog())
	})

	securedGroup := app.Group("/user", middleware.UserContextMiddleware(authService))

	securedGroup.Get("/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		prog, err := progressionService.GetProgression(userID)
		if err != nil {
			if errors.Is(err, services.ErrProgressionNotFound) {
				var createErr error
				prog, createErr = progressionService.EnsureProgressionRecord(userID)
				if createErr != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"error": "failed to create progression record",
						"cause": createErr.Error(),
					})
				}
			} else {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to fetch progression",
					"cause": err.Error(),
				})
			}
		}

		return c.JSON(fiber.Map{
			"id":                   prog.ID,
			"xp":                   prog.XP,
			"level":                prog.Level,
			"xp_into_level":        prog.XP % models.BaseXPPerLevel,
			"xp_for_next_level":    models.BaseXPPerLevel,
			"total_workouts":       prog.TotalWorkouts,
			"challenges_completed": prog.ChallengesCompleted,
			"classes_completed":    prog.ClassesCompleted,
			"social_interactions":  prog.SocialInteractions,
			"current_streak":       prog.CurrentStreak,
			"longest_streak":       prog.LongestStreak,
			"last_level_up_at":     prog.LastLevelUpAt,
		})
	})

	securedGroup.Get("/progress/badges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		earned, err := badgeService.ListUserBadges(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get badges",
				"cause": err.Error(),
			})
		}

		response := make([]fiber.Map, 0, len(earned))
		for _, ub := range earned {
			def, ok := models.BadgeByID(ub.BadgeID)
			if !ok {
				continue // badge retired from the catalog, keep the row but hide it
			}
			response = append(response, fiber.Map{
				"badge_id":     def.ID,
				"display_name": def.DisplayName,
				"icon":         def.Icon,
				"dimension":    def.Dimension,
				"tier":         def.Tier,
				"awarded_at":   ub.AwardedAt,
			})
		}
		return c.JSON(response)
	})

	// Admin endpoints
	adminGroup := app.Group("/admin",
		middleware.UserContextMiddleware(authService),
		middleware.RequireRole(string(models.RoleAdmin)),
	)

	adminGroup.Post("/xp/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID string `json:"user_id" validate:"required,uuid"`
			XP     int64  `json:"xp" validate:"required"`
			Reason string `json:"reason" validate:"max=255"`
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
		if req.Reason == "" {
			req.Reason = "admin_grant"
		}

		result, err := progressionService.RecordActivity(req.UserID, req.XP, req.Reason)
		if err != nil {
			if errors.Is(err, services.ErrProgressionNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user has no progression record"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "XP grant failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(result)
	})

	adminGroup.Post("/badges/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID  string `json:"user_id" validate:"required,uuid"`
			BadgeID string `json:"badge_id" validate:"required"`
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

		def, err := badgeService.GrantSpecialBadge(req.UserID, req.BadgeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "badge grant failed",
				"cause": err.Error(),
			})
		}
		if def == nil {
			return c.JSON(fiber.Map{"message": "badge already owned"})
		}
		return c.JSON(fiber.Map{"message": "badge granted", "badge": def})
	})
}
