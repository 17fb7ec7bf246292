package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hacktrack/internal/api"
	"hacktrack/internal/app/service"
	"hacktrack/internal/common/security"
	"hacktrack/internal/domain/repository"
	"hacktrack/internal/platform/cache"
	"hacktrack/internal/platform/config"
	"hacktrack/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	log.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	teamRepo := repository.NewPgTeamRepository(database.DB)
	milestoneRepo := repository.NewPgMilestoneRepository(database.DB)
	toolRepo := repository.NewPgToolUsageRepository(database.DB)
	progressRepo := repository.NewPgProgressRepository(database.DB)
	evalRepo := repository.NewPgEvaluationRepository(database.DB)

	// 6. Initialize Services
	verifier := security.NewPasswordVerifier(config.AppConfig.PasswordScheme)
	authorizer := security.NewPINAuthorizer(config.AppConfig.AdminPIN)

	leaderboardService := service.NewLeaderboardService(
		teamRepo, milestoneRepo, evalRepo, cache.NewRedisCache(cache.RDB), config.AppConfig.LeaderboardCacheTTL,
	)
	authService := service.NewAuthService(
		teamRepo, milestoneRepo, toolRepo, progressRepo, evalRepo, verifier, authorizer, leaderboardService, database.DB,
	)
	teamService := service.NewTeamService(
		teamRepo, milestoneRepo, toolRepo, progressRepo, evalRepo, leaderboardService,
	)
	reviewService := service.NewReviewService(
		teamService, teamRepo, milestoneRepo, evalRepo, leaderboardService,
	)
	adviceProvider := service.NewHTTPAdviceProvider(
		config.AppConfig.AdviceAPIURL,
		config.AppConfig.AdviceAPIKey,
		time.Duration(config.AppConfig.AdviceTimeoutSec)*time.Second,
	)
	adviceService := service.NewAdviceService(adviceProvider)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, teamService, reviewService, leaderboardService, adviceService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
