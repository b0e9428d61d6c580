package repositories

import (
	"context"
	"fmt"

	"github.com/pinkslip-racing/pinkslip/internal/constants"

	"github.com/jmoiron/sqlx"
)

// LeaderboardRow is one member's standing in a guild.
type LeaderboardRow struct {
	UserID   string `db:"user_id" json:"user_id"`
	Wins     int    `db:"wins" json:"wins"`
	Losses   int    `db:"losses" json:"losses"`
	Vehicles int    `db:"vehicles" json:"vehicles"`
}

// GuildSummary aggregates a guild's registrations and races.
type GuildSummary struct {
	ApprovedVehicles int `db:"approved_vehicles" json:"approved_vehicles"`
	PendingVehicles  int `db:"pending_vehicles" json:"pending_vehicles"`
	Races            int `db:"races" json:"races"`
}

// LeaderboardRepository runs the aggregate read queries over sqlx
type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// Top returns up to limit members ordered by wins, then fewest losses
func (r *LeaderboardRepository) Top(ctx context.Context, guildID string, limit int) ([]LeaderboardRow, error) {
	rows := []LeaderboardRow{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(constants.GuildLeaderboard), guildID, limit); err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return rows, nil
}

func (r *LeaderboardRepository) Summary(ctx context.Context, guildID string) (*GuildSummary, error) {
	var summary GuildSummary
	if err := r.db.GetContext(ctx, &summary, r.db.Rebind(constants.GuildSummary), guildID, guildID, guildID); err != nil {
		return nil, fmt.Errorf("failed to load guild summary: %w", err)
	}
	return &summary, nil
}

// Ping checks the shared pool
func (r *LeaderboardRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
