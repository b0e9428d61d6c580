package routes

import (
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/pinkslip-racing/pinkslip/internal/api"
	"github.com/pinkslip-racing/pinkslip/internal/middleware"
)

const (
	apiRequestsPerSecond = 5
	apiBurst             = 10
)

// RegisterAPIRoutes mounts the read-only guild API under /api/v1. Every
// route needs a bearer token and guild-scoped tokens only see their guild.
func RegisterAPIRoutes(r chi.Router, deps Dependencies) {
	handlers := api.NewHandlers(deps.Profiles)
	limiter := middleware.NewIPRateLimiter(rate.Limit(apiRequestsPerSecond), apiBurst)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(limiter.Middleware)
		v1.Use(middleware.AuthMiddleware(deps.JWTSecret))

		v1.Route("/guilds/{guildID}", func(guild chi.Router) {
			guild.Use(middleware.RequireGuildAccess())

			guild.Get("/leaderboard", handlers.GetLeaderboard())
			guild.Get("/summary", handlers.GetSummary())
			guild.Get("/users/{userID}", handlers.GetUserProfile())
		})
	})
}
