package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pinkslip-racing/pinkslip/internal/api"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	"github.com/pinkslip-racing/pinkslip/internal/metrics"
	"github.com/pinkslip-racing/pinkslip/internal/middleware"
)

// Dependencies is everything the ops HTTP surface reads from
type Dependencies struct {
	Profiles  api.ProfileReader
	Health    map[string]api.Pinger
	Metrics   *metrics.MetricsRegistry
	JWTSecret []byte
	UpSince   time.Time
}

func RegisterRoutes(deps Dependencies) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/healthCheck", api.HealthCheckHandler(deps.Health, deps.UpSince))

	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Gatherer, promhttp.HandlerOpts{}))
	}

	if len(deps.JWTSecret) == 0 {
		logging.Warn("API_JWT_SECRET not set, /api/v1 routes are disabled")
	} else {
		RegisterAPIRoutes(r, deps)
	}

	logging.Info("Router initialized with metrics and logging middleware")
	return r
}
