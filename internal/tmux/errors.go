package tmux

import "errors"

// Sentinel errors for the tmux package.
var (
	// ErrTmuxNotFound indicates no tmux binary is on PATH.
	ErrTmuxNotFound = errors.New("tmux: binary not found")

	// ErrNoSessionName indicates an open request without a session name.
	ErrNoSessionName = errors.New("tmux: session name is empty")
)
