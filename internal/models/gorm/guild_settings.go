package gorm

// GuildSettings stores the review and notification channels configured
// by /pinkslip setup.
type GuildSettings struct {
	GuildID               string `gorm:"column:guild_id;primaryKey"`
	ReviewChannelID       string `gorm:"column:review_channel_id"`
	NotificationChannelID string `gorm:"column:notification_channel_id"`
}

// TableName specifies the table name for GORM
func (GuildSettings) TableName() string {
	return "guild_settings"
}
