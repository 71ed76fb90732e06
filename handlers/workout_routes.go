package handlers

import (
	"strconv"
	"time"

	"fitness-club-backend/middleware"
	"fitness-club-backend/models"
	"fitness-club-backend/services"
	"fitness-club-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupWorkoutRoutes(app *fiber.App, authService *services.AuthService, workoutService *services.WorkoutService) {
	securedGroup := app.Group("/workouts", middleware.UserContextMiddleware(authService))

	securedGroup.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			Type        string     `json:"type" validate:"required,max=50"`
			DurationMin int        `json:"duration_min" validate:"min=0,max=1440"`
			Calories    int        `json:"calories" validate:"min=0"`
			Notes       string     `json:"notes" validate:"max=2000"`
			PerformedAt *time.Time `json:"performed_at"`
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

		userID := c.Locals("user_id").(string)
		w := &models.Workout{
			Type:        req.Type,
			DurationMin: req.DurationMin,
			Calories:    req.Calories,
			Notes:       req.Notes,
		}
		if req.PerformedAt != nil {
			w.PerformedAt = *req.PerformedAt
		}

		workout, progression, err := workoutService.LogWorkout(userID, w)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save workout",
				"cause": err.Error(),
			})
		}
		// progression may be nil when gamification bookkeeping degraded;
		// the workout itself is saved either way.
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"workout":     workout,
			"progression": progression,
		})
	})

	securedGroup.Get("/recent", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		days, _ := strconv.Atoi(c.Query("days", "30"))

		workouts, err := workoutService.History(userID, days)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get workouts",
				"cause": err.Error(),
			})
		}
		return c.JSON(workouts)
	})
}
