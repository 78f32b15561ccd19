// Package filesync copies configured files and links configured directories
// from the primary checkout into a new worktree. The configured lists are
// best-effort: unsafe entries are skipped with a warning, missing sources
// are skipped silently, and no single entry can fail the batch.
package filesync

import "log/slog"

// Syncer performs the file sync step of worktree provisioning.
type Syncer struct {
	logger *slog.Logger
}

// New returns a Syncer logging under the filesync module.
func New() *Syncer {
	return &Syncer{
		logger: slog.Default().With("module", "filesync"),
	}
}
