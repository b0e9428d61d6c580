package repositories

import "errors"

// Sentinel results. Anything else returned by a repository is a store
// fault and should be reported as a generic failure.
var (
	// ErrDuplicate means the (user, guild, make_model, year) key already exists.
	ErrDuplicate = errors.New("duplicate registration")
	// ErrNotFound means the addressed row does not exist in this guild.
	ErrNotFound = errors.New("record not found")
	// ErrNoOp means the row exists but the mutation would change nothing.
	ErrNoOp = errors.New("nothing to change")
	// ErrStaleState means a conditional update found the row in another state.
	ErrStaleState = errors.New("record state changed")
)
