package api

import (
	"net/http"
	"time"

	"hacktrack/internal/api/handler"
	"hacktrack/internal/app/service"
	"hacktrack/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	teamService *service.TeamService,
	reviewService *service.ReviewService,
	leaderboardService *service.LeaderboardService,
	adviceService *service.AdviceService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a token when present, puts claims in context. Route
	// groups decide whether a token is required.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		// Team self-service routes (team session required)
		teamHandler := handler.NewTeamHandler(teamService, adviceService)
		v1.Route("/teams", teamHandler.RegisterRoutes)

		// Admin review routes
		adminHandler := handler.NewAdminHandler(reviewService)
		v1.Route("/admin", adminHandler.RegisterRoutes)

		// Leaderboard routes (public)
		leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
		v1.Route("/leaderboard", leaderboardHandler.RegisterRoutes)
	})

	return r
}
