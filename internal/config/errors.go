// Package config loads the per-project worktree configuration
// (.opencode/worktree.jsonc, JSON with comments) and the user-global
// settings file (settings.yaml). The worktree configuration is read-only
// external input: it is auto-created with commented defaults on first use
// and degrades to empty defaults when unparseable, never failing the
// calling operation.
package config

import "errors"

// Sentinel errors for configuration operations.
var (
	// ErrInvalidSettings indicates the global settings file could not be
	// parsed.
	ErrInvalidSettings = errors.New("config: invalid settings file")
)
