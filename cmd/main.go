package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/readnest-backend/internal/clients/openai"
	"github.com/yungbote/readnest-backend/internal/clients/openlibrary"
	"github.com/yungbote/readnest-backend/internal/db"
	"github.com/yungbote/readnest-backend/internal/http/handlers"
	"github.com/yungbote/readnest-backend/internal/http/middleware"
	"github.com/yungbote/readnest-backend/internal/observability"
	"github.com/yungbote/readnest-backend/internal/platform/logger"
	"github.com/yungbote/readnest-backend/internal/repos"
	"github.com/yungbote/readnest-backend/internal/server"
	"github.com/yungbote/readnest-backend/internal/services"
	"github.com/yungbote/readnest-backend/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "readnest-backend",
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	bookRepo := repos.NewBookRepo(thePG, log)
	likeRepo := repos.NewLikeRepo(thePG, log)
	prefRepo := repos.NewPreferenceRepo(thePG, log)

	// Clients
	log.Info("Setting up clients from main...")
	catalogClient, err := openlibrary.NewClient(log)
	if err != nil {
		log.Error("Could not init OpenLibrary client", "error", err)
		os.Exit(1)
	}
	var aiClient openai.Client
	if c, cErr := openai.NewClient(log); cErr != nil {
		log.Warn("OpenAI client unavailable, summaries disabled", "error", cErr)
	} else {
		aiClient = c
	}
	summarizer := openai.NewSummarizer(log, aiClient)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo, likeRepo, prefRepo)
	catalogService := services.NewCatalogService(log, catalogClient, summarizer)
	likeService := services.NewLikeService(thePG, log, catalogClient, bookRepo, likeRepo, prefRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	bookHandler := handlers.NewBookHandler(catalogService, likeService)
	userHandler := handlers.NewUserHandler(userService, likeService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	var allowOrigins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowOrigins = append(allowOrigins, origin)
			}
		}
	}
	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		AuthHandler:    authHandler,
		BookHandler:    bookHandler,
		UserHandler:    userHandler,
		AuthMiddleware: authMiddleware,
		AllowOrigins:   allowOrigins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
