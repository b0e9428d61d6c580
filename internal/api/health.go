package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/models/entities"
)

// Pinger is anything the health check can probe: the sqlx pool, the cache
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

const healthCheckTimeout = 2 * time.Second

// HealthCheckHandler handles GET /healthCheck. It answers 503 when any
// dependency is down so container probes can act on it.
func HealthCheckHandler(checks map[string]Pinger, upSince time.Time) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		services := make(map[string]entities.ServiceStatus, len(checks))
		overallStatus := "ok"
		for _, name := range names {
			status := entities.ServiceStatus{Status: "ok", Details: "connected"}
			if err := checks[name].Ping(ctx); err != nil {
				status = entities.ServiceStatus{Status: "down", Details: err.Error()}
				overallStatus = "down"
			}
			services[name] = status
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince.UTC(),
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
