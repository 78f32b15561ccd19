package hook

import "errors"

// Sentinel errors for the hook package.
var (
	// ErrTimeout indicates the dispatch chain exceeded the registry
	// timeout before every handler finished.
	ErrTimeout = errors.New("hook: dispatch timed out")

	// ErrInvalidInput indicates the stdin payload was not a valid event
	// envelope.
	ErrInvalidInput = errors.New("hook: invalid event input")
)
