package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
)

// CompensationKind identifies a compensating action recorded by a race claim.
type CompensationKind string

const (
	// CompensateStat undoes an optimistic stat increment.
	CompensateStat CompensationKind = "stat"
	// CompensateOwner hands a provisionally transferred vehicle back.
	CompensateOwner CompensationKind = "owner"
)

// Compensation is one undo step. Stat steps use UserID/Stat/Delta, owner
// steps use SlipID/UserID (the owner to restore).
type Compensation struct {
	Kind   CompensationKind   `json:"kind"`
	UserID string             `json:"user_id"`
	Stat   constants.StatKind `json:"stat,omitempty"`
	Delta  int                `json:"delta,omitempty"`
	SlipID string             `json:"slip_id,omitempty"`
}

// Compensations is stored as a JSON text column, in the order the
// provisional effects were applied.
type Compensations []Compensation

// Scan implements the sql.Scanner interface
func (c *Compensations) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("Compensations: cannot scan type %T", value)
	}
	if len(raw) == 0 {
		*c = nil
		return nil
	}
	var out Compensations
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*c = out
	return nil
}

// Value implements the driver.Valuer interface
func (c Compensations) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// RaceClaim is the persisted workflow instance of a race-result claim.
// Every component interaction carries its ID; nothing is parsed back out
// of rendered messages.
type RaceClaim struct {
	ID            string                `gorm:"column:id;primaryKey"`
	GuildID       string                `gorm:"column:guild_id;not null;index"`
	ChannelID     string                `gorm:"column:channel_id"`
	InitiatorID   string                `gorm:"column:initiator_id;not null"`
	OpponentID    string                `gorm:"column:opponent_id;not null"`
	Outcome       constants.RaceOutcome `gorm:"column:outcome"`
	SlipID        string                `gorm:"column:slip_id"`
	State         constants.ClaimState  `gorm:"column:state;not null;index"`
	Compensations Compensations         `gorm:"column:compensations;type:text"`
	ExpiresAt     time.Time             `gorm:"column:expires_at;index"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (RaceClaim) TableName() string {
	return "race_claims"
}

// Winner is the member who ends up owning the vehicle.
func (c RaceClaim) Winner() string {
	if c.Outcome == constants.OutcomeWin {
		return c.InitiatorID
	}
	return c.OpponentID
}

// Loser is the member whose vehicle is at stake.
func (c RaceClaim) Loser() string {
	if c.Outcome == constants.OutcomeWin {
		return c.OpponentID
	}
	return c.InitiatorID
}
