package handlers

import (
	"errors"
	"strconv"

	"fitness-club-backend/middleware"
	"fitness-club-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupFeedRoutes(app *fiber.App, authService *services.AuthService, socialService *services.SocialService) {
	securedGroup := app.Group("/feed", middleware.UserContextMiddleware(authService))

	securedGroup.Get("/", func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		size, _ := strconv.Atoi(c.Query("size", "20"))
		posts, err := socialService.Feed(page, size)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load feed",
				"cause": err.Error(),
			})
		}
		return c.JSON(posts)
	})

	// Multipart: body field + optional photo file
	securedGroup.Post("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		body := c.FormValue("body")
		if body == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body is required"})
		}
		if len(body) > 5000 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body too long"})
		}

		photo, _ := c.FormFile("photo")

		post, err := socialService.CreatePost(userID, body, photo)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create post",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	securedGroup.Post("/:id/like", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := socialService.Like(userID, c.Params("id")); err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to like post",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "liked"})
	})

	securedGroup.Get("/:id/comments", func(c *fiber.Ctx) error {
		comments, err := socialService.Comments(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load comments",
				"cause": err.Error(),
			})
		}
		return c.JSON(comments)
	})

	securedGroup.Post("/:id/comments", func(c *fiber.Ctx) error {
		type Req struct {
			Body string `json:"body"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil || req.Body == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body is required"})
		}

		userID := c.Locals("user_id").(string)
		comment, err := socialService.Comment(userID, c.Params("id"), req.Body)
		if err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to comment",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	})
}
