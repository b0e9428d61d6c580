package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new GORM-based stats repository
func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Get returns the member's record, or a zero record when none exists yet
func (r *StatsRepository) Get(ctx context.Context, userID, guildID string) (*gormModels.UserStats, error) {
	stats := gormModels.UserStats{UserID: userID, GuildID: guildID}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		First(&stats).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}
	return &stats, nil
}

// Adjust adds delta to one stat, creating the row on first use. The
// stored value never drops below zero. It returns the new value.
func (r *StatsRepository) Adjust(ctx context.Context, userID, guildID string, kind constants.StatKind, delta int) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("unknown stat %q", kind)
	}
	column := string(kind)

	var value int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := gormModels.UserStats{UserID: userID, GuildID: guildID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return fmt.Errorf("failed to seed stats: %w", err)
		}

		// column comes from the two-value StatKind set checked above
		expr := gorm.Expr("CASE WHEN "+column+" + ? < 0 THEN 0 ELSE "+column+" + ? END", delta, delta)
		if err := tx.Model(&gormModels.UserStats{}).
			Where("user_id = ? AND guild_id = ?", userID, guildID).
			Update(column, expr).Error; err != nil {
			return fmt.Errorf("failed to adjust %s: %w", column, err)
		}

		var stats gormModels.UserStats
		if err := tx.Where("user_id = ? AND guild_id = ?", userID, guildID).First(&stats).Error; err != nil {
			return fmt.Errorf("failed to reload stats: %w", err)
		}
		if kind == constants.StatWins {
			value = stats.Wins
		} else {
			value = stats.Losses
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}
