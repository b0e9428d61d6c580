package discord

import (
	"fmt"
	"strings"
)

// Component custom ids are "<scope>:<action>[:<arg>]". The arg is the
// only state a component carries: a slip id, a claim id or a login.
const (
	scopeRegistration = "ps"
	scopeRace         = "rc"
	scopeTwitch       = "tw"
	scopeProfile      = "pf"

	// registration
	actionOpenForm   = "open"
	actionCancelForm = "cancel"
	actionForm       = "form"
	actionApprove    = "approve"
	actionDeny       = "deny"
	actionDenyReason = "denyreason"
	actionInfo       = "info"
	actionInfoText   = "infotext"

	// race
	actionWin     = "win"
	actionLoss    = "loss"
	actionPick    = "pick"
	actionConfirm = "confirm"
	actionDispute = "dispute"

	// twitch add confirmation
	actionTwitchConfirm = "confirm"
	actionTwitchCancel  = "cancel"

	// profile
	actionVehicle  = "vehicle"
	actionOverview = "overview"
)

const maxCustomIDLength = 100

// CustomID is a decoded component or modal custom id
type CustomID struct {
	Scope  string
	Action string
	Arg    string
}

func newCustomID(scope, action, arg string) CustomID {
	return CustomID{Scope: scope, Action: action, Arg: arg}
}

func (c CustomID) String() string {
	if c.Arg == "" {
		return c.Scope + ":" + c.Action
	}
	return c.Scope + ":" + c.Action + ":" + c.Arg
}

// Route is the scope and action joined, used as the handler key
func (c CustomID) Route() string {
	return c.Scope + ":" + c.Action
}

// ParseCustomID decodes raw. The arg may itself contain colons.
func ParseCustomID(raw string) (CustomID, error) {
	if raw == "" || len(raw) > maxCustomIDLength {
		return CustomID{}, fmt.Errorf("invalid custom id %q", raw)
	}
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return CustomID{}, fmt.Errorf("invalid custom id %q", raw)
	}

	id := CustomID{Scope: parts[0], Action: parts[1]}
	if len(parts) == 3 {
		id.Arg = parts[2]
	}
	switch id.Scope {
	case scopeRegistration, scopeRace, scopeTwitch, scopeProfile:
	default:
		return CustomID{}, fmt.Errorf("unknown custom id scope %q", id.Scope)
	}
	return id, nil
}
