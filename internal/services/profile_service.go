package services

import (
	"context"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
)

const defaultLeaderboardSize = 10

// Profile is a member's garage and race record in one guild.
type Profile struct {
	UserID       string               `json:"user_id"`
	GuildID      string               `json:"guild_id"`
	Wins         int                  `json:"wins"`
	Losses       int                  `json:"losses"`
	Record       string               `json:"record"`
	Approved     int                  `json:"approved_vehicles"`
	Pending      int                  `json:"pending_vehicles"`
	Vehicles     []gormModels.Vehicle `json:"-"`
	VehicleNames []string             `json:"vehicles"`
}

// ProfileService serves read-only views for the profile command and the ops API
type ProfileService struct {
	vehicles    *repositories.VehicleRepository
	stats       *repositories.StatsRepository
	leaderboard *repositories.LeaderboardRepository
}

func NewProfileService(
	vehicles *repositories.VehicleRepository,
	stats *repositories.StatsRepository,
	leaderboard *repositories.LeaderboardRepository,
) *ProfileService {
	return &ProfileService{vehicles: vehicles, stats: stats, leaderboard: leaderboard}
}

func (s *ProfileService) Profile(ctx context.Context, userID, guildID string) (*Profile, error) {
	vehicles, err := s.vehicles.ListByOwner(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.Get(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		UserID:       userID,
		GuildID:      guildID,
		Wins:         stats.Wins,
		Losses:       stats.Losses,
		Record:       FormatStats(stats.Wins, stats.Losses),
		Vehicles:     vehicles,
		VehicleNames: make([]string, 0, len(vehicles)),
	}
	for _, v := range vehicles {
		if v.Status == constants.VehicleStatusApproved {
			p.Approved++
		} else {
			p.Pending++
		}
		p.VehicleNames = append(p.VehicleNames, v.DisplayName())
	}
	return p, nil
}

// Vehicle returns one registration for the detail view, scoped to guildID
func (s *ProfileService) Vehicle(ctx context.Context, guildID, slipID string) (*gormModels.Vehicle, error) {
	v, err := s.vehicles.GetBySlipID(ctx, slipID)
	if err != nil {
		return nil, err
	}
	if v == nil || v.GuildID != guildID {
		return nil, repositories.ErrNotFound
	}
	return v, nil
}

// SearchVehicles backs vehicle-id autocomplete
func (s *ProfileService) SearchVehicles(ctx context.Context, guildID, query string) ([]gormModels.Vehicle, error) {
	return s.vehicles.SearchGuild(ctx, guildID, query)
}

func (s *ProfileService) Leaderboard(ctx context.Context, guildID string, limit int) ([]repositories.LeaderboardRow, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLeaderboardSize
	}
	return s.leaderboard.Top(ctx, guildID, limit)
}

func (s *ProfileService) Summary(ctx context.Context, guildID string) (*repositories.GuildSummary, error) {
	return s.leaderboard.Summary(ctx, guildID)
}
