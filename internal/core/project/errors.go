// Package project locates the project root and derives a stable project
// identity. Worktree state (configuration, the session database, agent
// workspaces) is anchored to the root so invocations from subdirectories
// or linked worktrees do not scatter .opencode directories around.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrNotInProject indicates no .opencode directory was found in the
	// working directory or any of its parents.
	ErrNotInProject = errors.New("not inside a project (no .opencode directory found)")
)
