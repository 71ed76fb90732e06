package handlers

import (
	"errors"
	"strconv"
	"time"

	"fitness-club-backend/middleware"
	"fitness-club-backend/models"
	"fitness-club-backend/services"
	"fitness-club-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupClassRoutes(app *fiber.App, authService *services.AuthService, classService *services.ClassService) {
	securedGroup := app.Group("/classes", middleware.UserContextMiddleware(authService))

	securedGroup.Get("/", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		classes, err := classService.Upcoming(limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list classes",
				"cause": err.Error(),
			})
		}
		return c.JSON(classes)
	})

	// Coaches schedule classes
	coachGroup := app.Group("/classes",
		middleware.UserContextMiddleware(authService),
		middleware.RequireRole(string(models.RoleCoach)),
	)

	coachGroup.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			Name        string    `json:"name" validate:"required,max=100"`
			Description string    `json:"description" validate:"max=2000"`
			Capacity    int       `json:"capacity" validate:"min=0,max=500"`
			StartsAt    time.Time `json:"starts_at" validate:"required"`
			DurationMin int       `json:"duration_min" validate:"min=0,max=480"`
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

		coachID := c.Locals("user_id").(string)
		class, err := classService.CreateClass(coachID, &models.Class{
			Name:        req.Name,
			Description: req.Description,
			Capacity:    req.Capacity,
			StartsAt:    req.StartsAt,
			DurationMin: req.DurationMin,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create class",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(class)
	})

	securedGroup.Post("/:id/book", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		booking, err := classService.Book(userID, c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrClassFull):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, services.ErrAlreadyBooked):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "booking failed",
					"cause": err.Error(),
				})
			}
		}
		return c.Status(fiber.StatusCreated).JSON(booking)
	})

	securedGroup.Post("/:id/cancel", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := classService.Cancel(userID, c.Params("id")); err != nil {
			if errors.Is(err, services.ErrBookingMissing) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "cancellation failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "booking cancelled"})
	})

	// Coach marks a member's attendance complete; this is what feeds the
	// class counter and class XP.
	coachGroup.Post("/:id/attended/:userId", func(c *fiber.Ctx) error {
		result, err := classService.CompleteAttendance(c.Params("id"), c.Params("userId"))
		if err != nil {
			if errors.Is(err, services.ErrBookingMissing) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark attendance",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message":     "attendance recorded",
			"progression": result,
		})
	})
}
