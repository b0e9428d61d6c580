package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new GORM-based guild settings repository
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns nil, nil when the guild never ran setup
func (r *SettingsRepository) Get(ctx context.Context, guildID string) (*gormModels.GuildSettings, error) {
	var s gormModels.GuildSettings
	err := r.db.WithContext(ctx).Where("guild_id = ?", guildID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch guild settings: %w", err)
	}
	return &s, nil
}

// Upsert replaces both channel ids for the guild
func (r *SettingsRepository) Upsert(ctx context.Context, guildID, reviewChannelID, notificationChannelID string) error {
	s := gormModels.GuildSettings{
		GuildID:               guildID,
		ReviewChannelID:       reviewChannelID,
		NotificationChannelID: notificationChannelID,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"review_channel_id", "notification_channel_id"}),
	}).Create(&s).Error
	if err != nil {
		return fmt.Errorf("failed to upsert guild settings: %w", err)
	}
	return nil
}
