package gorm

import "time"

// RaceResult is the append-only audit row written when a claim is confirmed.
type RaceResult struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	GuildID       string    `gorm:"column:guild_id;not null;index"`
	WinnerID      string    `gorm:"column:winner_id;not null"`
	LoserID       string    `gorm:"column:loser_id;not null"`
	VehicleSlipID string    `gorm:"column:vehicle_slip_id;not null"`
	ClaimID       string    `gorm:"column:claim_id"`
	RaceDate      time.Time `gorm:"column:race_date;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (RaceResult) TableName() string {
	return "race_results"
}
