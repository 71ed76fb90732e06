package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fitness-club-backend/handlers"
	"fitness-club-backend/middleware"
	"fitness-club-backend/models"
	"fitness-club-backend/services"
	"fitness-club-backend/utils"
	"fitness-club-backend/workers"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	// A broken badge catalog is a programming error; refuse to boot on one.
	if err := models.ValidateBadgeCatalog(); err != nil {
		log.Fatal("invalid badge catalog: ", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB, post photos are the largest uploads
	})

	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.AccessCode{},
		&models.UserProgression{},
		&models.UserBadge{},
		&models.Workout{},
		&models.Class{},
		&models.ClassBooking{},
		&models.Challenge{},
		&models.ChallengeEntry{},
		&models.Post{},
		&models.Comment{},
		&models.PostLike{},
		&models.ChatMessage{},
		&models.Notification{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.InitR2(); err != nil {
		log.Println("⚠️  R2 not configured, media uploads fall back to local disk:", err)
	}
	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     getEnvDefault("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("failed to connect to redis:", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	// Service wiring. ProgressionService is the only progression entry point
	// the activity services get.
	store := services.NewGormProgressionStore(db)
	notificationService := services.NewNotificationService(db)
	badgeService := services.NewBadgeService(store, notificationService)
	progressionService := services.NewProgressionService(store, badgeService, notificationService)
	authService := services.NewAuthService(db, progressionService, jwtSecret, 24*time.Hour)
	workoutService := services.NewWorkoutService(db, store, progressionService)
	classService := services.NewClassService(db, store, progressionService)
	challengeService := services.NewChallengeService(db, store, progressionService)
	socialService := services.NewSocialService(db, store, progressionService)
	chatService := services.NewChatService(db, rdb)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := workers.NewChatHub(chatService)
	go hub.Run(ctx)

	if pushClient := workers.NewPushClient(db); pushClient != nil {
		go workers.PollNotifications(ctx, pushClient, 10*time.Second)
		log.Println("✅ Notification push worker running (every 10s)")
	} else {
		log.Println("⚠️  PUSH_RELAY_URL not set, notifications stay in-app only")
	}

	services.StartMaintenanceScheduler(db, challengeService)

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupProgressionRoutes(app, authService, progressionService, badgeService)
	handlers.SetupWorkoutRoutes(app, authService, workoutService)
	handlers.SetupClassRoutes(app, authService, classService)
	handlers.SetupChallengeRoutes(app, authService, challengeService)
	handlers.SetupFeedRoutes(app, authService, socialService)
	handlers.SetupChatRoutes(app, authService, chatService)
	handlers.SetupNotificationRoutes(app, authService, notificationService)

	app.Get("/ws", middleware.WSAuthMiddleware(authService), websocket.New(hub.Handler))

	app.Static("/uploads", "./uploads")

	port := getEnvDefault("PORT", "5300")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Maintenance scheduler running (streak resets, challenge expiry)")
	log.Printf("✅ Badge catalog loaded: %d definitions", len(models.BadgeCatalog))

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
