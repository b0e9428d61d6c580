package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	"github.com/pinkslip-racing/pinkslip/internal/metrics"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"

	"gorm.io/gorm"
)

// RaceNotifier posts race claim traffic. Failures are logged only.
type RaceNotifier interface {
	// RequestConfirmation asks the opponent to confirm or dispute.
	RequestConfirmation(ctx context.Context, channelID string, claim *gormModels.RaceClaim, v *gormModels.Vehicle) error
	// NotifyExpired tells the participants a claim lapsed and was reverted.
	NotifyExpired(ctx context.Context, channelID string, claim *gormModels.RaceClaim) error
}

// RaceService runs race claims through Transition and executes the
// resulting effects. Each step commits in one transaction together with
// the conditional state update, so a losing concurrent actor changes nothing.
type RaceService struct {
	db       *gorm.DB
	vehicles *repositories.VehicleRepository
	settings *repositories.SettingsRepository
	notifier RaceNotifier
	metrics  *metrics.MetricsRegistry
	now      func() time.Time
}

// NewRaceService creates a new race claim service
func NewRaceService(db *gorm.DB, notifier RaceNotifier, metricsReg *metrics.MetricsRegistry) *RaceService {
	return &RaceService{
		db:       db,
		vehicles: repositories.NewVehicleRepository(db),
		settings: repositories.NewSettingsRepository(db),
		notifier: notifier,
		metrics:  metricsReg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start opens a claim. Self-races and bot opponents are rejected before
// anything is stored.
func (s *RaceService) Start(ctx context.Context, guildID, channelID, initiatorID, opponentID string, opponentIsBot bool) (*gormModels.RaceClaim, error) {
	if opponentID == initiatorID {
		return nil, fmt.Errorf("%w: you cannot race yourself", ErrInvalidOpponent)
	}
	if opponentIsBot {
		return nil, fmt.Errorf("%w: bots cannot race", ErrInvalidOpponent)
	}

	claim := &gormModels.RaceClaim{
		ID:          uuid.NewString(),
		GuildID:     guildID,
		ChannelID:   channelID,
		InitiatorID: initiatorID,
		OpponentID:  opponentID,
		State:       constants.ClaimStarted,
		ExpiresAt:   s.now().Add(SelectionWindow),
	}
	if err := repositories.NewRaceClaimRepository(s.db).Create(ctx, claim); err != nil {
		return nil, err
	}

	logging.Info("Race claim started",
		"claim_id", claim.ID,
		"guild_id", guildID,
		"initiator_id", initiatorID,
		"opponent_id", opponentID,
	)
	return claim, nil
}

// ClaimOutcome records the initiator's declared result and returns the
// vehicles at stake. When the member at stake has no approved vehicle
// the claim is aborted, the stat increment reverted, and
// ErrNoEligibleVehicle returned.
func (s *RaceService) ClaimOutcome(ctx context.Context, claimID, actorID string, outcome constants.RaceOutcome) (*gormModels.RaceClaim, []gormModels.Vehicle, error) {
	claim, err := s.Apply(ctx, claimID, Action{Kind: ActionClaimOutcome, ActorID: actorID, Outcome: outcome})
	if err != nil {
		return claim, nil, err
	}

	pool, err := s.vehicles.ListApprovedByOwner(ctx, claim.Loser(), claim.GuildID)
	if err != nil {
		return claim, nil, fmt.Errorf("failed to load vehicle pool: %w", err)
	}
	if len(pool) > 0 {
		return claim, pool, nil
	}

	aborted, err := s.Apply(ctx, claimID, Action{Kind: ActionAbort})
	if err != nil {
		return claim, nil, err
	}
	return aborted, nil, ErrNoEligibleVehicle
}

// VehicleOptions lists the vehicles the initiator may pick for claimID.
func (s *RaceService) VehicleOptions(ctx context.Context, claimID string) ([]gormModels.Vehicle, error) {
	claim, err := repositories.NewRaceClaimRepository(s.db).Get(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, repositories.ErrNotFound
	}
	if claim.State != constants.ClaimOutcomeClaimed {
		return nil, ErrClaimClosed
	}
	return s.vehicles.ListApprovedByOwner(ctx, claim.Loser(), claim.GuildID)
}

// ChooseVehicle provisionally hands slipID to the eventual winner and
// posts the confirmation request for the opponent.
func (s *RaceService) ChooseVehicle(ctx context.Context, claimID, actorID, slipID string) (*gormModels.RaceClaim, *gormModels.Vehicle, error) {
	claim, err := s.Apply(ctx, claimID, Action{Kind: ActionChooseVehicle, ActorID: actorID, SlipID: slipID})
	if err != nil {
		return claim, nil, err
	}

	v, err := s.vehicles.GetBySlipID(ctx, slipID)
	if err != nil || v == nil {
		logging.Error("Vehicle vanished after provisional transfer", "claim_id", claimID, "slip_id", slipID, "error", err)
		return claim, nil, fmt.Errorf("failed to reload vehicle %s", slipID)
	}

	channelID := claim.ChannelID
	if gs, err := s.settings.Get(ctx, claim.GuildID); err != nil {
		logging.Error("Settings lookup failed, using claim channel", "guild_id", claim.GuildID, "error", err)
	} else if gs != nil && gs.NotificationChannelID != "" {
		channelID = gs.NotificationChannelID
	}
	if channelID == "" {
		logging.Warn("No channel for confirmation request", "claim_id", claimID, "guild_id", claim.GuildID)
	} else if err := s.notifier.RequestConfirmation(ctx, channelID, claim, v); err != nil {
		logging.Error("Failed to post confirmation request", "claim_id", claimID, "channel_id", channelID, "error", err)
	}
	return claim, v, nil
}

// Confirm finalises the claim. Only the opponent may confirm.
func (s *RaceService) Confirm(ctx context.Context, claimID, actorID string) (*gormModels.RaceClaim, error) {
	return s.Apply(ctx, claimID, Action{Kind: ActionConfirm, ActorID: actorID})
}

// Dispute reverts every provisional change. Only the opponent may dispute.
func (s *RaceService) Dispute(ctx context.Context, claimID, actorID string) (*gormModels.RaceClaim, error) {
	return s.Apply(ctx, claimID, Action{Kind: ActionDispute, ActorID: actorID})
}

// Expire times out an open claim and tells its channel.
func (s *RaceService) Expire(ctx context.Context, claimID string) (*gormModels.RaceClaim, error) {
	claim, err := s.Apply(ctx, claimID, Action{Kind: ActionTimeout})
	if err != nil {
		return claim, err
	}
	if claim.ChannelID != "" {
		if err := s.notifier.NotifyExpired(ctx, claim.ChannelID, claim); err != nil {
			logging.Error("Failed to post expiry notice", "claim_id", claimID, "error", err)
		}
	}
	return claim, nil
}

// Apply loads the claim, runs Transition and commits the new state with
// its effects. A late action times the claim out and returns
// ErrClaimExpired.
func (s *RaceService) Apply(ctx context.Context, claimID string, a Action) (*gormModels.RaceClaim, error) {
	if a.Now.IsZero() {
		a.Now = s.now()
	}

	var (
		result  gormModels.RaceClaim
		expired bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claims := repositories.NewRaceClaimRepository(tx)

		claim, err := claims.Get(ctx, claimID)
		if err != nil {
			return err
		}
		if claim == nil {
			return repositories.ErrNotFound
		}

		if a.Kind == ActionChooseVehicle && a.Vehicle == nil {
			v, err := repositories.NewVehicleRepository(tx).GetBySlipID(ctx, a.SlipID)
			if err != nil {
				return err
			}
			a.Vehicle = v
		}

		next, effects, err := Transition(*claim, a)
		if errors.Is(err, ErrClaimExpired) {
			expired = true
			next, effects, err = Transition(*claim, Action{Kind: ActionTimeout, Now: a.Now})
		}
		if err != nil {
			result = *claim
			return err
		}

		if err := claims.TransitionState(ctx, claim.State, &next); err != nil {
			if errors.Is(err, repositories.ErrStaleState) {
				return ErrClaimClosed
			}
			return err
		}
		if err := s.execute(ctx, tx, next, effects, a.Kind == ActionChooseVehicle && !expired); err != nil {
			return err
		}
		result = next
		return nil
	})
	if err != nil {
		if result.ID == "" {
			return nil, err
		}
		return &result, err
	}

	if result.State.Terminal() {
		s.metrics.ObserveClaim(string(result.State))
	}
	logging.Info("Race claim transition",
		"claim_id", result.ID,
		"guild_id", result.GuildID,
		"action", a.Kind.String(),
		"actor_id", a.ActorID,
		"state", result.State,
	)

	if expired {
		return &result, ErrClaimExpired
	}
	return &result, nil
}

// execute applies effects inside tx. A forward transfer that finds the
// vehicle moved fails the step; a rollback transfer that does is logged
// and skipped so the remaining compensations still run.
func (s *RaceService) execute(ctx context.Context, tx *gorm.DB, claim gormModels.RaceClaim, effects []Effect, forward bool) error {
	vehicles := repositories.NewVehicleRepository(tx)
	stats := repositories.NewStatsRepository(tx)
	results := repositories.NewRaceResultRepository(tx)

	for _, e := range effects {
		switch e.Kind {
		case EffectAdjustStat:
			if _, err := stats.Adjust(ctx, e.UserID, claim.GuildID, e.Stat, e.Delta); err != nil {
				return err
			}

		case EffectTransferOwner:
			ok, err := vehicles.TransferFrom(ctx, e.SlipID, claim.GuildID, e.FromOwner, e.NewOwner)
			if err != nil {
				return err
			}
			if !ok {
				if forward {
					return ErrNoEligibleVehicle
				}
				logging.Warn("Vehicle owner changed during claim, ownership not reverted",
					"claim_id", claim.ID,
					"slip_id", e.SlipID,
					"expected_owner", e.FromOwner,
				)
			}

		case EffectRecordResult:
			if err := results.Record(ctx, &gormModels.RaceResult{
				GuildID:       claim.GuildID,
				WinnerID:      e.WinnerID,
				LoserID:       e.LoserID,
				VehicleSlipID: e.SlipID,
				ClaimID:       claim.ID,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExpireDue times out every open claim past its window. It returns the
// number of claims rolled back.
func (s *RaceService) ExpireDue(ctx context.Context, limit int) (int, error) {
	due, err := repositories.NewRaceClaimRepository(s.db).ListExpired(ctx, s.now(), limit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, claim := range due {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}
		if _, err := s.Expire(ctx, claim.ID); err != nil {
			// a participant acted between the listing and now
			if errors.Is(err, ErrClaimClosed) {
				continue
			}
			logging.Error("Failed to expire race claim", "claim_id", claim.ID, "error", err)
			continue
		}
		expired++
	}
	return expired, nil
}

// OpenClaims reports claims still awaiting an action
func (s *RaceService) OpenClaims(ctx context.Context) (int64, error) {
	return repositories.NewRaceClaimRepository(s.db).CountOpen(ctx)
}
