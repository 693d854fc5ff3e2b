package game

import "errors"

var (
	// ErrInvalidButtonCount is returned when the menu input is not a
	// positive integer within the configured maximum.
	ErrInvalidButtonCount = errors.New("invalid button count")

	// ErrWrongState is returned for an operation the current state does not accept.
	ErrWrongState = errors.New("operation not allowed in current state")

	// ErrUnknownButton is returned for a click on an id outside the round.
	ErrUnknownButton = errors.New("unknown button")

	// ErrMissingHost is returned by New when no Host is configured.
	ErrMissingHost = errors.New("host is required")
)
