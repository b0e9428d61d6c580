package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/api"
	"github.com/pinkslip-racing/pinkslip/internal/auth"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	"github.com/pinkslip-racing/pinkslip/internal/metrics"
	"github.com/pinkslip-racing/pinkslip/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func init() {
	logging.UseLogger(zap.NewNop().Sugar())
}

type stubProfiles struct{}

func (stubProfiles) Profile(ctx context.Context, userID, guildID string) (*services.Profile, error) {
	return &services.Profile{UserID: userID, GuildID: guildID, Wins: 1}, nil
}

func (stubProfiles) Leaderboard(ctx context.Context, guildID string, limit int) ([]repositories.LeaderboardRow, error) {
	return []repositories.LeaderboardRow{}, nil
}

func (stubProfiles) Summary(ctx context.Context, guildID string) (*repositories.GuildSummary, error) {
	return &repositories.GuildSummary{Races: 3}, nil
}

func testDeps(secret string) Dependencies {
	return Dependencies{
		Profiles: stubProfiles{},
		Health: map[string]api.Pinger{
			"database": api.PingFunc(func(ctx context.Context) error { return nil }),
		},
		Metrics:   metrics.NewMetricsRegistry(prometheus.NewRegistry()),
		JWTSecret: []byte(secret),
		UpSince:   time.Now(),
	}
}

func get(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.1.1.1:4000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRegisterRoutes(t *testing.T) {
	h := RegisterRoutes(testDeps("router-secret"))
	token, err := auth.IssueToken([]byte("router-secret"), "ops", "999", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"health is public", "/healthCheck", "", http.StatusOK},
		{"api needs a token", "/api/v1/guilds/999/summary", "", http.StatusUnauthorized},
		{"summary", "/api/v1/guilds/999/summary", token, http.StatusOK},
		{"leaderboard", "/api/v1/guilds/999/leaderboard", token, http.StatusOK},
		{"profile", "/api/v1/guilds/999/users/111", token, http.StatusOK},
		{"other guild", "/api/v1/guilds/123/summary", token, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := get(h, tt.path, tt.token); rr.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, rr.Code, rr.Body.String())
			}
		})
	}

	rr := get(h, "/metrics", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "pinkslip_http_requests_total") {
		t.Errorf("Expected HTTP metrics to be exported, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Errorf("Expected a request id on every response")
	}
}

func TestAPIDisabledWithoutSecret(t *testing.T) {
	h := RegisterRoutes(testDeps(""))
	if rr := get(h, "/api/v1/guilds/999/summary", "anything"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 with the API disabled, got %d", rr.Code)
	}
	if rr := get(h, "/healthCheck", ""); rr.Code != http.StatusOK {
		t.Errorf("Health must stay up, got %d", rr.Code)
	}
}
