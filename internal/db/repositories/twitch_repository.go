package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TwitchRepository struct {
	db *gorm.DB
}

// NewTwitchRepository creates a new GORM-based repository for announcement
// settings and streamer watches
func NewTwitchRepository(db *gorm.DB) *TwitchRepository {
	return &TwitchRepository{db: db}
}

// GetSettings returns nil, nil when announcements are not configured
func (r *TwitchRepository) GetSettings(ctx context.Context, guildID string) (*gormModels.TwitchSettings, error) {
	var s gormModels.TwitchSettings
	err := r.db.WithContext(ctx).Where("guild_id = ?", guildID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch twitch settings: %w", err)
	}
	return &s, nil
}

func (r *TwitchRepository) UpsertSettings(ctx context.Context, guildID, channelID string, roleID *string) error {
	s := gormModels.TwitchSettings{GuildID: guildID, ChannelID: channelID, RoleID: roleID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"channel_id", "role_id"}),
	}).Create(&s).Error
	if err != nil {
		return fmt.Errorf("failed to upsert twitch settings: %w", err)
	}
	return nil
}

// DisableGuild drops the settings row and every watch of the guild.
// It reports whether settings existed.
func (r *TwitchRepository) DisableGuild(ctx context.Context, guildID string) (bool, error) {
	var existed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("guild_id = ?", guildID).Delete(&gormModels.TwitchSettings{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete twitch settings: %w", res.Error)
		}
		existed = res.RowsAffected > 0
		if err := tx.Where("guild_id = ?", guildID).Delete(&gormModels.StreamerWatch{}).Error; err != nil {
			return fmt.Errorf("failed to delete streamer watches: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}

// AddWatch returns ErrDuplicate when the login is already watched
func (r *TwitchRepository) AddWatch(ctx context.Context, guildID, login string) error {
	w := gormModels.StreamerWatch{GuildID: guildID, TwitchUsername: login}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&w)
	if res.Error != nil {
		return fmt.Errorf("failed to add streamer watch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *TwitchRepository) RemoveWatch(ctx context.Context, guildID, login string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("guild_id = ? AND twitch_username = ?", guildID, login).
		Delete(&gormModels.StreamerWatch{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove streamer watch: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *TwitchRepository) ListWatches(ctx context.Context, guildID string) ([]gormModels.StreamerWatch, error) {
	var watches []gormModels.StreamerWatch
	err := r.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("twitch_username ASC").
		Find(&watches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list streamer watches: %w", err)
	}
	return watches, nil
}

func (r *TwitchRepository) CountWatches(ctx context.Context, guildID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.StreamerWatch{}).
		Where("guild_id = ?", guildID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count streamer watches: %w", err)
	}
	return count, nil
}

// ListTargets joins every watch with its guild's announcement settings.
// Watches in guilds without settings are not polled.
func (r *TwitchRepository) ListTargets(ctx context.Context) ([]gormModels.WatchTarget, error) {
	var targets []gormModels.WatchTarget
	err := r.db.WithContext(ctx).
		Table("twitch_streamers AS w").
		Select("w.id, w.guild_id, w.twitch_username, w.is_live, w.last_stream_id, s.channel_id, s.role_id").
		Joins("JOIN twitch_settings AS s ON s.guild_id = w.guild_id").
		Order("w.id ASC").
		Scan(&targets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list watch targets: %w", err)
	}
	return targets, nil
}

// SetLive records an announced stream
func (r *TwitchRepository) SetLive(ctx context.Context, watchID uint, streamID string) error {
	err := r.db.WithContext(ctx).Model(&gormModels.StreamerWatch{}).
		Where("id = ?", watchID).
		Updates(map[string]interface{}{"is_live": true, "last_stream_id": streamID}).Error
	if err != nil {
		return fmt.Errorf("failed to mark streamer live: %w", err)
	}
	return nil
}

func (r *TwitchRepository) SetOffline(ctx context.Context, watchID uint) error {
	err := r.db.WithContext(ctx).Model(&gormModels.StreamerWatch{}).
		Where("id = ?", watchID).
		Update("is_live", false).Error
	if err != nil {
		return fmt.Errorf("failed to mark streamer offline: %w", err)
	}
	return nil
}
