package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	config "github.com/lyrahq/lyra-backend/configs"
	"github.com/lyrahq/lyra-backend/internal/api/handlers"
	"github.com/lyrahq/lyra-backend/internal/api/middleware"
	"github.com/lyrahq/lyra-backend/internal/platforms"
	"github.com/lyrahq/lyra-backend/internal/repository"
	"github.com/lyrahq/lyra-backend/internal/service"
	"github.com/lyrahq/lyra-backend/pkg/crypto"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	// Tokens cannot be stored or read without a working cipher, so a missing
	// or malformed key stops the process here rather than at first use.
	cipher, err := crypto.New([]byte(cfg.EncryptionKey))
	if err != nil {
		log.Fatalf("Invalid ENCRYPTION_KEY: %v", err)
	}

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	contentRepo := repository.NewContentRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	registry := platforms.Default(*cfg)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	oauthService := service.NewOAuthService(registry, socialAccountRepo, cipher)
	postingService := service.NewPostingService(oauthService, registry, cipher)
	platformService := service.NewPlatformService(registry, socialAccountRepo)
	aiService := service.NewAIService(*cfg)
	contentService := service.NewContentService(contentRepo, profileRepo, aiService)
	profileService := service.NewProfileService(profileRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	social := handlers.NewSocialHandler(oauthService, postingService, platformService, contentService)
	api.Get("/social/oauth/:platform/authorize", social.InitiateOAuth)
	api.Post("/social/oauth/:platform/callback", social.OAuthCallback)
	api.Post("/social/auto-post/:platform", social.AutoPost)
	api.Get("/social/platforms/status", social.PlatformStatus)
	api.Delete("/social/disconnect/:platform", social.Disconnect)

	content := handlers.NewContentHandler(contentService)
	api.Post("/content/generate", content.Generate)
	api.Get("/content", content.List)
	api.Post("/content/:id/approve", content.Approve)

	profile := handlers.NewProfileHandler(profileService)
	api.Get("/profile", profile.GetProfile)
	api.Post("/profile", profile.UpdateProfile)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
