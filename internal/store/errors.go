// Package store persists worktree session tracking in an embedded SQLite
// database under the project state directory. It owns three tables: active
// sessions, the single-slot pending-delete marker, and an append-only event
// log. The database file survives process restarts.
package store

import "errors"

// Sentinel errors for the store package.
var (
	// ErrSessionNotFound indicates no session row matched the lookup key.
	ErrSessionNotFound = errors.New("session not found")
)
