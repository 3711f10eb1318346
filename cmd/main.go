package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Naveen-Pal/StudySahayak/internal/clients/gemini"
	"github.com/Naveen-Pal/StudySahayak/internal/clients/rediscache"
	"github.com/Naveen-Pal/StudySahayak/internal/db"
	"github.com/Naveen-Pal/StudySahayak/internal/graph"
	apphttp "github.com/Naveen-Pal/StudySahayak/internal/http"
	httpH "github.com/Naveen-Pal/StudySahayak/internal/http/handlers"
	httpMW "github.com/Naveen-Pal/StudySahayak/internal/http/middleware"
	"github.com/Naveen-Pal/StudySahayak/internal/logger"
	"github.com/Naveen-Pal/StudySahayak/internal/repos"
	"github.com/Naveen-Pal/StudySahayak/internal/services"
	"github.com/Naveen-Pal/StudySahayak/internal/utils"
)

func main() {
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
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Optional backends. The API runs without either; graph derivation
	// degrades to its deterministic tiers and generation endpoints report
	// unavailability.
	var textGen graph.TextGenerator
	geminiClient, err := gemini.NewClient(log)
	if err != nil {
		log.Warn("Gemini client unavailable, generation disabled", "error", err)
	} else {
		textGen = geminiClient
	}

	graphCache, err := rediscache.NewGraphCache(log)
	if err != nil {
		log.Warn("Redis graph cache unavailable, caching disabled", "error", err)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	contentRepo := repos.NewContentRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	processor := services.NewContentProcessor(log)
	aiService := services.NewAIService(log, geminiClient)
	contentService := services.NewContentService(log, contentRepo, processor, aiService, graphCache)
	deriver := graph.NewDeriver(log, textGen)
	graphService := services.NewGraphService(log, contentRepo, deriver, graphCache)
	studyService := services.NewStudyService(log, contentRepo, aiService)

	// Handlers
	log.Info("Setting up Handlers from main...")
	healthHandler := httpH.NewHealthHandler(log)
	authHandler := httpH.NewAuthHandler(log, authService)
	contentHandler := httpH.NewContentHandler(log, contentService)
	graphHandler := httpH.NewGraphHandler(log, graphService)
	studyHandler := httpH.NewStudyHandler(log, studyService)

	// Middleware
	authMiddleware := httpMW.NewAuthMiddleware(log, authService)

	// Router
	router := apphttp.NewRouter(apphttp.RouterConfig{
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		ContentHandler: contentHandler,
		GraphHandler:   graphHandler,
		StudyHandler:   studyHandler,
		HealthHandler:  healthHandler,
	})

	log.Info("Starting HTTP server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("HTTP server exited", "error", err)
	}
}
