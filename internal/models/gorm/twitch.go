package gorm

// TwitchSettings is the per-guild announcement target.
type TwitchSettings struct {
	GuildID   string  `gorm:"column:guild_id;primaryKey"`
	ChannelID string  `gorm:"column:channel_id;not null"`
	RoleID    *string `gorm:"column:role_id"`
}

// TableName specifies the table name for GORM
func (TwitchSettings) TableName() string {
	return "twitch_settings"
}

// StreamerWatch is one watched Twitch login in one guild.
type StreamerWatch struct {
	ID             uint   `gorm:"column:id;primaryKey;autoIncrement"`
	GuildID        string `gorm:"column:guild_id;not null;uniqueIndex:idx_streamer_guild_login"`
	TwitchUsername string `gorm:"column:twitch_username;not null;uniqueIndex:idx_streamer_guild_login"`
	IsLive         bool   `gorm:"column:is_live;not null;default:false"`
	LastStreamID   string `gorm:"column:last_stream_id"`
}

// TableName specifies the table name for GORM
func (StreamerWatch) TableName() string {
	return "twitch_streamers"
}

// WatchTarget is a watch joined with its guild's announcement settings.
type WatchTarget struct {
	ID             uint    `gorm:"column:id"`
	GuildID        string  `gorm:"column:guild_id"`
	TwitchUsername string  `gorm:"column:twitch_username"`
	IsLive         bool    `gorm:"column:is_live"`
	LastStreamID   string  `gorm:"column:last_stream_id"`
	ChannelID      string  `gorm:"column:channel_id"`
	RoleID         *string `gorm:"column:role_id"`
}
