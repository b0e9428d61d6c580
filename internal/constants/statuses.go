package constants

import (
	"database/sql/driver"
	"fmt"
)

// VehicleStatus mirrors the vehicles.status column. Denied registrations
// are deleted, so there is no denied value.
type VehicleStatus string

const (
	VehicleStatusPending  VehicleStatus = "pending"
	VehicleStatusApproved VehicleStatus = "approved"
)

func (s VehicleStatus) String() string { return string(s) }

// Scan implements the sql.Scanner interface
func (s *VehicleStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = VehicleStatus(v)
	case []byte:
		*s = VehicleStatus(v)
	default:
		return fmt.Errorf("VehicleStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s VehicleStatus) Value() (driver.Value, error) { return string(s), nil }

// StatKind selects the user_stats column an adjustment applies to.
type StatKind string

const (
	StatWins   StatKind = "wins"
	StatLosses StatKind = "losses"
)

// Valid reports whether k names a real column; callers must check before
// the value reaches a query.
func (k StatKind) Valid() bool { return k == StatWins || k == StatLosses }

// Opposite returns the complementary stat.
func (k StatKind) Opposite() StatKind {
	if k == StatWins {
		return StatLosses
	}
	return StatWins
}

// RaceOutcome is what the initiator of a race claim declares.
type RaceOutcome string

const (
	OutcomeWin  RaceOutcome = "win"
	OutcomeLoss RaceOutcome = "loss"
)

// Stat maps an outcome to the stat credited to whoever declared it.
func (o RaceOutcome) Stat() StatKind {
	if o == OutcomeWin {
		return StatWins
	}
	return StatLosses
}

// ClaimState is the persisted state of a race claim workflow instance.
type ClaimState string

const (
	ClaimStarted          ClaimState = "started"
	ClaimOutcomeClaimed   ClaimState = "outcome_claimed"
	ClaimAwaitingOpponent ClaimState = "awaiting_opponent"
	ClaimConfirmed        ClaimState = "confirmed"
	ClaimDisputed         ClaimState = "disputed"
	ClaimTimedOut         ClaimState = "timed_out"
	ClaimAborted          ClaimState = "aborted"
)

// Terminal reports whether no further transition is possible.
func (s ClaimState) Terminal() bool {
	switch s {
	case ClaimConfirmed, ClaimDisputed, ClaimTimedOut, ClaimAborted:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface
func (s *ClaimState) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = ""
	case string:
		*s = ClaimState(v)
	case []byte:
		*s = ClaimState(v)
	default:
		return fmt.Errorf("ClaimState: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s ClaimState) Value() (driver.Value, error) { return string(s), nil }
