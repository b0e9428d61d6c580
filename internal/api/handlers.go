package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	"github.com/pinkslip-racing/pinkslip/internal/middleware"
	"github.com/pinkslip-racing/pinkslip/internal/services"
)

const maxLeaderboardLimit = 100

// ProfileReader is the read side of services.ProfileService
type ProfileReader interface {
	Profile(ctx context.Context, userID, guildID string) (*services.Profile, error)
	Leaderboard(ctx context.Context, guildID string, limit int) ([]repositories.LeaderboardRow, error)
	Summary(ctx context.Context, guildID string) (*repositories.GuildSummary, error)
}

type Handlers struct {
	profiles ProfileReader
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(profiles ProfileReader) *Handlers {
	return &Handlers{
		profiles: profiles,
	}
}

type leaderboardResponse struct {
	GuildID string                        `json:"guild_id"`
	Entries []repositories.LeaderboardRow `json:"entries"`
}

// GetLeaderboard handles GET /api/v1/guilds/{guildID}/leaderboard?limit=N
func (h *Handlers) GetLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := chi.URLParam(r, "guildID")

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > maxLeaderboardLimit {
				respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100")
				return
			}
			limit = n
		}

		rows, err := h.profiles.Leaderboard(r.Context(), guildID, limit)
		if err != nil {
			h.internalError(w, r, "Failed to load leaderboard", err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &leaderboardResponse{GuildID: guildID, Entries: rows})
	}
}

// GetSummary handles GET /api/v1/guilds/{guildID}/summary
func (h *Handlers) GetSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := h.profiles.Summary(r.Context(), chi.URLParam(r, "guildID"))
		if err != nil {
			h.internalError(w, r, "Failed to load guild summary", err)
			return
		}
		respondWithSuccess(w, http.StatusOK, summary)
	}
}

// GetUserProfile handles GET /api/v1/guilds/{guildID}/users/{userID}
func (h *Handlers) GetUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := chi.URLParam(r, "guildID")
		userID := chi.URLParam(r, "userID")

		profile, err := h.profiles.Profile(r.Context(), userID, guildID)
		if err != nil {
			h.internalError(w, r, "Failed to load profile", err)
			return
		}
		if len(profile.Vehicles) == 0 && profile.Wins == 0 && profile.Losses == 0 {
			respondWithError(w, http.StatusNotFound, "no registrations or races for this member")
			return
		}
		respondWithSuccess(w, http.StatusOK, profile)
	}
}

func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logging.Error(msg,
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"guild_id", chi.URLParam(r, "guildID"),
		"error", err.Error(),
	)
	respondWithError(w, http.StatusInternalServerError, "internal error")
}
