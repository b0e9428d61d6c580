package services

import (
	"fmt"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
)

const (
	// SelectionWindow bounds the outcome and vehicle picking steps.
	SelectionWindow = 5 * time.Minute
	// ConfirmationWindow bounds the opponent's confirm/dispute step.
	ConfirmationWindow = 10 * time.Minute
)

// ActionKind tags a race claim action.
type ActionKind int

const (
	ActionClaimOutcome ActionKind = iota + 1
	ActionChooseVehicle
	ActionConfirm
	ActionDispute
	ActionTimeout
	// ActionAbort closes a claim whose stake holder has no approved vehicle.
	ActionAbort
)

func (k ActionKind) String() string {
	switch k {
	case ActionClaimOutcome:
		return "claim_outcome"
	case ActionChooseVehicle:
		return "choose_vehicle"
	case ActionConfirm:
		return "confirm"
	case ActionDispute:
		return "dispute"
	case ActionTimeout:
		return "timeout"
	case ActionAbort:
		return "abort"
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is one input to Transition. Only the fields its Kind needs are read.
type Action struct {
	Kind    ActionKind
	ActorID string
	Now     time.Time

	// ActionClaimOutcome
	Outcome constants.RaceOutcome

	// ActionChooseVehicle: the selected slip and the vehicle as re-read
	// from the store
	SlipID  string
	Vehicle *gormModels.Vehicle
}

// EffectKind tags a store mutation requested by Transition.
type EffectKind int

const (
	EffectAdjustStat EffectKind = iota + 1
	EffectTransferOwner
	EffectRecordResult
)

// Effect is a mutation for the caller to execute, in order.
type Effect struct {
	Kind EffectKind

	// EffectAdjustStat
	UserID string
	Stat   constants.StatKind
	Delta  int

	// EffectTransferOwner moves SlipID from FromOwner to NewOwner
	SlipID    string
	FromOwner string
	NewOwner  string

	// EffectRecordResult
	WinnerID string
	LoserID  string
}

// Transition computes the next claim state and the effects to apply. It
// never touches the store. Errors leave the claim unchanged.
func Transition(claim gormModels.RaceClaim, a Action) (gormModels.RaceClaim, []Effect, error) {
	if claim.State.Terminal() {
		return claim, nil, ErrClaimClosed
	}
	if a.Kind != ActionTimeout && !a.Now.IsZero() && !claim.ExpiresAt.IsZero() && a.Now.After(claim.ExpiresAt) {
		return claim, nil, ErrClaimExpired
	}

	next := claim
	next.Compensations = append(gormModels.Compensations(nil), claim.Compensations...)

	switch a.Kind {
	case ActionClaimOutcome:
		if claim.State != constants.ClaimStarted {
			return claim, nil, wrongState(a.Kind, claim.State)
		}
		if a.ActorID != claim.InitiatorID {
			return claim, nil, ErrNotAuthorized
		}
		if a.Outcome != constants.OutcomeWin && a.Outcome != constants.OutcomeLoss {
			return claim, nil, fmt.Errorf("unknown outcome %q", a.Outcome)
		}
		next.Outcome = a.Outcome
		next.State = constants.ClaimOutcomeClaimed
		next.ExpiresAt = a.Now.Add(SelectionWindow)

		stat := a.Outcome.Stat()
		next.Compensations = append(next.Compensations, gormModels.Compensation{
			Kind: gormModels.CompensateStat, UserID: claim.InitiatorID, Stat: stat, Delta: -1,
		})
		return next, []Effect{{Kind: EffectAdjustStat, UserID: claim.InitiatorID, Stat: stat, Delta: 1}}, nil

	case ActionChooseVehicle:
		if claim.State != constants.ClaimOutcomeClaimed {
			return claim, nil, wrongState(a.Kind, claim.State)
		}
		if a.ActorID != claim.InitiatorID {
			return claim, nil, ErrNotAuthorized
		}
		v := a.Vehicle
		if v == nil || v.GuildID != claim.GuildID || v.UserID != claim.Loser() || v.Status != constants.VehicleStatusApproved {
			return claim, nil, ErrNoEligibleVehicle
		}
		next.SlipID = v.SlipID
		next.State = constants.ClaimAwaitingOpponent
		next.ExpiresAt = a.Now.Add(ConfirmationWindow)
		next.Compensations = append(next.Compensations, gormModels.Compensation{
			Kind: gormModels.CompensateOwner, UserID: v.UserID, SlipID: v.SlipID,
		})
		return next, []Effect{{Kind: EffectTransferOwner, SlipID: v.SlipID, FromOwner: v.UserID, NewOwner: claim.Winner()}}, nil

	case ActionConfirm:
		if claim.State != constants.ClaimAwaitingOpponent {
			return claim, nil, wrongState(a.Kind, claim.State)
		}
		if a.ActorID != claim.OpponentID {
			return claim, nil, ErrNotAuthorized
		}
		next.State = constants.ClaimConfirmed
		return next, []Effect{
			{Kind: EffectAdjustStat, UserID: claim.OpponentID, Stat: claim.Outcome.Stat().Opposite(), Delta: 1},
			{Kind: EffectRecordResult, WinnerID: claim.Winner(), LoserID: claim.Loser(), SlipID: claim.SlipID},
		}, nil

	case ActionDispute:
		if claim.State != constants.ClaimAwaitingOpponent {
			return claim, nil, wrongState(a.Kind, claim.State)
		}
		if a.ActorID != claim.OpponentID {
			return claim, nil, ErrNotAuthorized
		}
		next.State = constants.ClaimDisputed
		return next, rollback(claim), nil

	case ActionTimeout:
		next.State = constants.ClaimTimedOut
		return next, rollback(claim), nil

	case ActionAbort:
		if claim.State != constants.ClaimOutcomeClaimed {
			return claim, nil, wrongState(a.Kind, claim.State)
		}
		next.State = constants.ClaimAborted
		return next, rollback(claim), nil
	}

	return claim, nil, fmt.Errorf("unknown action %s", a.Kind)
}

// rollback replays the claim's compensations newest first.
func rollback(claim gormModels.RaceClaim) []Effect {
	comps := claim.Compensations
	effects := make([]Effect, 0, len(comps))
	for i := len(comps) - 1; i >= 0; i-- {
		c := comps[i]
		switch c.Kind {
		case gormModels.CompensateStat:
			effects = append(effects, Effect{Kind: EffectAdjustStat, UserID: c.UserID, Stat: c.Stat, Delta: c.Delta})
		case gormModels.CompensateOwner:
			effects = append(effects, Effect{Kind: EffectTransferOwner, SlipID: c.SlipID, FromOwner: claim.Winner(), NewOwner: c.UserID})
		}
	}
	return effects
}

func wrongState(kind ActionKind, state constants.ClaimState) error {
	return fmt.Errorf("%w: %s not allowed in state %s", ErrClaimClosed, kind, state)
}
