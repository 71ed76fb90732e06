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

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	app.Post("/auth/register", func(c *fiber.Ctx) error {
		type Req struct {
			Email      string `json:"email" validate:"required,email"`
			Password   string `json:"password" validate:"required,min=8,max=128"`
			Name       string `json:"name" validate:"required,max=100"`
			AccessCode string `json:"access_code" validate:"required"`
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

		user, err := authService.Register(req.Email, req.Password, req.Name, req.AccessCode)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAccessCode):
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, services.ErrEmailAlreadyExists):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "registration failed",
					"cause": err.Error(),
				})
			}
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	app.Post("/auth/login", func(c *fiber.Ctx) error {
		type Req struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
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

		user, token, err := authService.Login(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "login failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"user": user, "token": token})
	})

	// Admin: issue single-use registration codes
	adminGroup := app.Group("/admin",
		middleware.UserContextMiddleware(authService),
		middleware.RequireRole(string(models.RoleAdmin)),
	)

	adminGroup.Post("/access-codes", func(c *fiber.Ctx) error {
		type Req struct {
			Plan    string `json:"plan"`
			TTLDays int    `json:"ttl_days"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.TTLDays < 1 {
			req.TTLDays = 30
		}

		adminID := c.Locals("user_id").(string)
		code, err := authService.IssueAccessCode(adminID, models.MembershipPlan(req.Plan), time.Duration(req.TTLDays)*24*time.Hour)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to issue access code",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(code)
	})
}
