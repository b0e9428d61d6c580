package discord

import (
	"errors"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/providers"
	"github.com/pinkslip-racing/pinkslip/internal/services"
)

// rejection is a handler-level refusal with its own copy
type rejection struct {
	title       string
	description string
}

func (r *rejection) Error() string {
	return r.title + ": " + r.description
}

func reject(title, description string) error {
	return &rejection{title: title, description: description}
}

// userFacing maps a service error to embed copy. expected is false for
// hard failures, which callers log with the detail before replying with
// the generic message.
func userFacing(err error) (title, description string, expected bool) {
	var (
		verr *services.ValidationError
		rej  *rejection
		perr *providers.ProviderError
	)
	switch {
	case errors.As(err, &rej):
		return rej.title, rej.description, true
	case errors.As(err, &verr):
		return constants.TitleInvalidSubmission, err.Error(), true
	case errors.Is(err, repositories.ErrDuplicate):
		return constants.TitleDuplicate, constants.MsgDuplicate, true
	case errors.Is(err, services.ErrReviewDesync):
		return constants.TitleReviewDesync, constants.MsgReviewDesync, true
	case errors.Is(err, services.ErrNotAuthorized):
		return constants.TitleNotAuthorized, constants.MsgNotParticipant, true
	case errors.Is(err, services.ErrClaimExpired):
		return constants.TitleClaimExpired, constants.MsgClaimExpired, true
	case errors.Is(err, services.ErrClaimClosed):
		return constants.TitleClaimClosed, constants.MsgClaimClosed, true
	case errors.Is(err, services.ErrNoEligibleVehicle):
		return constants.TitleNoEligibleVehicle, constants.MsgNoEligibleVehicle, true
	case errors.Is(err, services.ErrInvalidAmount):
		return constants.TitleInvalidAmount, constants.MsgInvalidAmount, true
	case errors.Is(err, services.ErrReasonRequired):
		return constants.TitleReasonRequired, constants.MsgReasonRequired, true
	case errors.Is(err, services.ErrTwitchUnavailable):
		return constants.TitleTwitchUnavailable, constants.MsgTwitchUnavailable, true
	case errors.Is(err, services.ErrInvalidUsername):
		return constants.TitleInvalidUsername, constants.MsgInvalidUsername, true
	case errors.As(err, &perr):
		return constants.TitleTwitchUnavailable, constants.GetErrorMessage(perr.Code), true
	}
	return constants.TitleSystemUnavailable, constants.MsgGeneric, false
}
