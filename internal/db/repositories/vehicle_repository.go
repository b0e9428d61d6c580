package repositories

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"

	"gorm.io/gorm"
)

const (
	slipIDAttempts = 8
	searchLimit    = 25
)

type VehicleRepository struct {
	db *gorm.DB
	// randSuffix returns a value in [1000, 9999]; replaced in tests
	randSuffix func() int
}

// NewVehicleRepository creates a new GORM-based vehicle repository
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{
		db:         db,
		randSuffix: func() int { return 1000 + rand.IntN(9000) },
	}
}

// Create inserts v as a pending registration and returns its slip id.
// ErrDuplicate is returned when the owner already registered the same
// make/model and year in this guild.
func (r *VehicleRepository) Create(ctx context.Context, v *gormModels.Vehicle) (string, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&gormModels.Vehicle{}).
			Where("user_id = ? AND guild_id = ? AND make_model = ? AND year = ?", v.UserID, v.GuildID, v.MakeModel, v.Year).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check duplicate registration: %w", err)
		}
		if count > 0 {
			return ErrDuplicate
		}

		slipID, err := r.uniqueSlipID(tx, v.UserID, v.GuildID)
		if err != nil {
			return err
		}

		v.SlipID = slipID
		v.Status = constants.VehicleStatusPending
		if err := tx.Create(v).Error; err != nil {
			return fmt.Errorf("failed to insert registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return v.SlipID, nil
}

func (r *VehicleRepository) uniqueSlipID(tx *gorm.DB, userID, guildID string) (string, error) {
	for i := 0; i < slipIDAttempts; i++ {
		candidate := r.slipCandidate(userID, guildID)

		var count int64
		if err := tx.Model(&gormModels.Vehicle{}).Where("slip_id = ?", candidate).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to probe slip id: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slip id after %d attempts", slipIDAttempts)
}

// slipCandidate sums the numeric snowflakes with the random suffix.
// Non-numeric ids fall back to the user id followed by the suffix.
func (r *VehicleRepository) slipCandidate(userID, guildID string) string {
	suffix := r.randSuffix()
	u, errU := strconv.ParseUint(userID, 10, 64)
	g, errG := strconv.ParseUint(guildID, 10, 64)
	if errU != nil || errG != nil {
		return userID + strconv.Itoa(suffix)
	}
	return strconv.FormatUint(u+g+uint64(suffix), 10)
}

// GetBySlipID returns nil, nil when no registration carries slipID
func (r *VehicleRepository) GetBySlipID(ctx context.Context, slipID string) (*gormModels.Vehicle, error) {
	var v gormModels.Vehicle
	err := r.db.WithContext(ctx).Where("slip_id = ?", slipID).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}
	return &v, nil
}

// ListByOwner returns every registration of a member, newest first
func (r *VehicleRepository) ListByOwner(ctx context.Context, userID, guildID string) ([]gormModels.Vehicle, error) {
	var vehicles []gormModels.Vehicle
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Order("created_at DESC").Order("slip_id DESC").
		Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

// ListApprovedByOwner is the pool a race loser can pay out from
func (r *VehicleRepository) ListApprovedByOwner(ctx context.Context, userID, guildID string) ([]gormModels.Vehicle, error) {
	var vehicles []gormModels.Vehicle
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND guild_id = ? AND status = ?", userID, guildID, constants.VehicleStatusApproved).
		Order("created_at DESC").Order("slip_id DESC").
		Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list approved vehicles: %w", err)
	}
	return vehicles, nil
}

// SearchGuild matches make/model or slip id for autocomplete.
func (r *VehicleRepository) SearchGuild(ctx context.Context, guildID, query string) ([]gormModels.Vehicle, error) {
	pattern := "%" + query + "%"
	var vehicles []gormModels.Vehicle
	err := r.db.WithContext(ctx).
		Where("guild_id = ? AND (make_model LIKE ? OR slip_id LIKE ?)", guildID, pattern, pattern).
		Order("make_model ASC").
		Limit(searchLimit).
		Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search vehicles: %w", err)
	}
	return vehicles, nil
}

// SetStatus updates by natural key; false when no row matched.
func (r *VehicleRepository) SetStatus(ctx context.Context, userID, guildID, makeModel, year string, status constants.VehicleStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&gormModels.Vehicle{}).
		Where("user_id = ? AND guild_id = ? AND make_model = ? AND year = ?", userID, guildID, makeModel, year).
		Update("status", status)
	if res.Error != nil {
		return false, fmt.Errorf("failed to set status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SetStatusBySlip moves a registration from one status to another. It
// returns false when the row is gone or no longer in from.
func (r *VehicleRepository) SetStatusBySlip(ctx context.Context, slipID, guildID string, from, to constants.VehicleStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&gormModels.Vehicle{}).
		Where("slip_id = ? AND guild_id = ? AND status = ?", slipID, guildID, from).
		Update("status", to)
	if res.Error != nil {
		return false, fmt.Errorf("failed to set status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteBySlip removes a registration scoped to a guild
func (r *VehicleRepository) DeleteBySlip(ctx context.Context, slipID, guildID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("slip_id = ? AND guild_id = ?", slipID, guildID).
		Delete(&gormModels.Vehicle{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete vehicle: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteByDetails removes a registration by its natural key
func (r *VehicleRepository) DeleteByDetails(ctx context.Context, userID, guildID, makeModel, year string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND guild_id = ? AND make_model = ? AND year = ?", userID, guildID, makeModel, year).
		Delete(&gormModels.Vehicle{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete vehicle: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// TransferOwnership rewrites the owner of slipID. It returns false when
// the slip is absent, belongs to another guild, or newOwner already owns it.
func (r *VehicleRepository) TransferOwnership(ctx context.Context, slipID, newOwner, guildID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&gormModels.Vehicle{}).
		Where("slip_id = ? AND guild_id = ? AND user_id <> ?", slipID, guildID, newOwner).
		Update("user_id", newOwner)
	if res.Error != nil {
		return false, fmt.Errorf("failed to transfer vehicle: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// TransferFrom moves slipID to newOwner only while fromOwner still holds
// it. Race claims use it so a concurrent admin transfer is not clobbered.
func (r *VehicleRepository) TransferFrom(ctx context.Context, slipID, guildID, fromOwner, newOwner string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&gormModels.Vehicle{}).
		Where("slip_id = ? AND guild_id = ? AND user_id = ?", slipID, guildID, fromOwner).
		Update("user_id", newOwner)
	if res.Error != nil {
		return false, fmt.Errorf("failed to transfer vehicle: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
