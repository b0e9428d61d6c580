package gorm

import (
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
)

// Vehicle is a pinkslip registration. (user_id, guild_id, make_model, year)
// is unique; ownership transfers rewrite user_id only.
type Vehicle struct {
	SlipID       string                  `gorm:"column:slip_id;primaryKey"`
	UserID       string                  `gorm:"column:user_id;not null;uniqueIndex:idx_vehicle_owner_model"`
	GuildID      string                  `gorm:"column:guild_id;not null;uniqueIndex:idx_vehicle_owner_model;index"`
	MakeModel    string                  `gorm:"column:make_model;not null;uniqueIndex:idx_vehicle_owner_model"`
	Year         string                  `gorm:"column:year;not null;uniqueIndex:idx_vehicle_owner_model"`
	EngineSpec   string                  `gorm:"column:engine_spec;not null"`
	Transmission string                  `gorm:"column:transmission;not null"`
	SteamID      string                  `gorm:"column:steam_id;not null"`
	Status       constants.VehicleStatus `gorm:"column:status;not null;default:pending"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

// DisplayName renders "Make Model (Year)".
func (v Vehicle) DisplayName() string {
	return v.MakeModel + " (" + v.Year + ")"
}
