package services

import (
	"context"
	"fmt"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
)

// StatOperation is the admin stats verb.
type StatOperation string

const (
	StatAdd      StatOperation = "add"
	StatSubtract StatOperation = "subtract"
)

// AdminService performs ungated staff mutations. Every call is attributed
// in the log; no audit row is written.
type AdminService struct {
	vehicles *repositories.VehicleRepository
	stats    *repositories.StatsRepository
}

func NewAdminService(vehicles *repositories.VehicleRepository, stats *repositories.StatsRepository) *AdminService {
	return &AdminService{vehicles: vehicles, stats: stats}
}

// ForceTransfer moves a vehicle to newOwner. It returns
// repositories.ErrNotFound for an unknown slip and repositories.ErrNoOp
// when newOwner already holds it.
func (s *AdminService) ForceTransfer(ctx context.Context, actorID, guildID, slipID, newOwner string) (*gormModels.Vehicle, error) {
	v, err := s.guildVehicle(ctx, guildID, slipID)
	if err != nil {
		return nil, err
	}
	if v.UserID == newOwner {
		return v, repositories.ErrNoOp
	}

	ok, err := s.vehicles.TransferOwnership(ctx, slipID, newOwner, guildID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return v, repositories.ErrNoOp
	}

	logging.Info("Admin transferred vehicle",
		"actor_id", actorID,
		"guild_id", guildID,
		"slip_id", slipID,
		"from_user_id", v.UserID,
		"to_user_id", newOwner,
	)
	v.UserID = newOwner
	return v, nil
}

// ForceDelete removes a vehicle regardless of status
func (s *AdminService) ForceDelete(ctx context.Context, actorID, guildID, slipID string) (*gormModels.Vehicle, error) {
	v, err := s.guildVehicle(ctx, guildID, slipID)
	if err != nil {
		return nil, err
	}

	ok, err := s.vehicles.DeleteBySlip(ctx, slipID, guildID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repositories.ErrNotFound
	}

	logging.Info("Admin deleted vehicle",
		"actor_id", actorID,
		"guild_id", guildID,
		"slip_id", slipID,
		"owner_id", v.UserID,
	)
	return v, nil
}

// AdjustStats adds or subtracts amount from one stat, clamped at zero.
// It returns the updated record.
func (s *AdminService) AdjustStats(ctx context.Context, actorID, guildID, memberID string, op StatOperation, kind constants.StatKind, amount int) (*gormModels.UserStats, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown stat %q", kind)
	}

	delta := amount
	switch op {
	case StatAdd:
	case StatSubtract:
		delta = -amount
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}

	if _, err := s.stats.Adjust(ctx, memberID, guildID, kind, delta); err != nil {
		return nil, err
	}

	logging.Info("Admin adjusted stats",
		"actor_id", actorID,
		"guild_id", guildID,
		"member_id", memberID,
		"stat", kind,
		"delta", delta,
	)
	return s.stats.Get(ctx, memberID, guildID)
}

func (s *AdminService) guildVehicle(ctx context.Context, guildID, slipID string) (*gormModels.Vehicle, error) {
	v, err := s.vehicles.GetBySlipID(ctx, slipID)
	if err != nil {
		return nil, err
	}
	if v == nil || v.GuildID != guildID {
		return nil, repositories.ErrNotFound
	}
	return v, nil
}
