package repositories

import (
	"context"
	"fmt"

	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"

	"gorm.io/gorm"
)

type RaceResultRepository struct {
	db *gorm.DB
}

// NewRaceResultRepository creates a new GORM-based race audit repository
func NewRaceResultRepository(db *gorm.DB) *RaceResultRepository {
	return &RaceResultRepository{db: db}
}

// Record appends one confirmed race to the audit log
func (r *RaceResultRepository) Record(ctx context.Context, result *gormModels.RaceResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to record race result: %w", err)
	}
	return nil
}

// ListByGuild returns the most recent results first
func (r *RaceResultRepository) ListByGuild(ctx context.Context, guildID string, limit int) ([]gormModels.RaceResult, error) {
	var results []gormModels.RaceResult
	err := r.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("race_date DESC").Order("id DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list race results: %w", err)
	}
	return results, nil
}
