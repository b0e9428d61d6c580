package gorm

// UserStats holds race wins and losses per member per guild.
type UserStats struct {
	UserID  string `gorm:"column:user_id;primaryKey"`
	GuildID string `gorm:"column:guild_id;primaryKey"`
	Wins    int    `gorm:"column:wins;not null;default:0"`
	Losses  int    `gorm:"column:losses;not null;default:0"`
}

// TableName specifies the table name for GORM
func (UserStats) TableName() string {
	return "user_stats"
}
