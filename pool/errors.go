package pool

import "errors"

var (
	// ErrUnknownArena is returned by Get for a name that was never
	// registered, or has since been Forgotten.
	ErrUnknownArena = errors.New("pool: no arena registered under this name")

	// ErrAlreadyRegistered is returned by Register/Adopt when the
	// caller-supplied name collides with an existing entry.
	ErrAlreadyRegistered = errors.New("pool: name already registered")
)
