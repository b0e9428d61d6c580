package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"

	"gorm.io/gorm"
)

var openClaimStates = []constants.ClaimState{
	constants.ClaimStarted,
	constants.ClaimOutcomeClaimed,
	constants.ClaimAwaitingOpponent,
}

type RaceClaimRepository struct {
	db *gorm.DB
}

// NewRaceClaimRepository creates a new GORM-based race claim repository
func NewRaceClaimRepository(db *gorm.DB) *RaceClaimRepository {
	return &RaceClaimRepository{db: db}
}

func (r *RaceClaimRepository) Create(ctx context.Context, claim *gormModels.RaceClaim) error {
	if err := r.db.WithContext(ctx).Create(claim).Error; err != nil {
		return fmt.Errorf("failed to create race claim: %w", err)
	}
	return nil
}

// Get returns nil, nil for an unknown claim id
func (r *RaceClaimRepository) Get(ctx context.Context, id string) (*gormModels.RaceClaim, error) {
	var claim gormModels.RaceClaim
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&claim).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch race claim: %w", err)
	}
	return &claim, nil
}

// TransitionState writes next only if the stored row is still in from.
// ErrStaleState means another actor moved the claim first.
func (r *RaceClaimRepository) TransitionState(ctx context.Context, from constants.ClaimState, next *gormModels.RaceClaim) error {
	res := r.db.WithContext(ctx).Model(&gormModels.RaceClaim{}).
		Where("id = ? AND state = ?", next.ID, from).
		Updates(map[string]interface{}{
			"state":         next.State,
			"outcome":       next.Outcome,
			"slip_id":       next.SlipID,
			"compensations": next.Compensations,
			"expires_at":    next.ExpiresAt,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update race claim: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}

// ListExpired returns open claims whose window closed before now
func (r *RaceClaimRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]gormModels.RaceClaim, error) {
	var claims []gormModels.RaceClaim
	err := r.db.WithContext(ctx).
		Where("state IN ? AND expires_at < ?", openClaimStates, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&claims).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expired claims: %w", err)
	}
	return claims, nil
}

// CountOpen is exported as a gauge by the expiry worker
func (r *RaceClaimRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.RaceClaim{}).
		Where("state IN ?", openClaimStates).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count open claims: %w", err)
	}
	return count, nil
}
