package services

import "errors"

var (
	// ErrNotAuthorized means the actor is not the participant allowed to act.
	ErrNotAuthorized = errors.New("not authorized for this action")
	// ErrClaimClosed means the race claim already reached a terminal state.
	ErrClaimClosed = errors.New("race claim is closed")
	// ErrClaimExpired means the action window lapsed; the claim was rolled back.
	ErrClaimExpired = errors.New("race claim expired")
	// ErrReviewDesync means the review target no longer matches the request.
	ErrReviewDesync = errors.New("review target is out of sync")
	// ErrInvalidOpponent covers self-races and bot opponents.
	ErrInvalidOpponent = errors.New("invalid opponent")
	// ErrNoEligibleVehicle means the member at stake owns no approved vehicle.
	ErrNoEligibleVehicle = errors.New("no eligible vehicle")
	// ErrReasonRequired means a denial was submitted without a reason.
	ErrReasonRequired = errors.New("a reason is required")
	// ErrInvalidAmount means an admin stat adjustment was not positive.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrNotConfigured means the guild has not run the relevant setup.
	ErrNotConfigured = errors.New("guild not configured")
	// ErrStreamerNotFound means Twitch has no user with the given login.
	ErrStreamerNotFound = errors.New("twitch user not found")
	// ErrTwitchUnavailable means the bot runs without Twitch credentials.
	ErrTwitchUnavailable = errors.New("twitch integration unavailable")
	// ErrInvalidUsername means the login is empty or malformed after normalisation.
	ErrInvalidUsername = errors.New("invalid twitch username")
)
