package worktree

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/arbor-sh/arbor/internal/config"
	"github.com/arbor-sh/arbor/internal/core/git"
	"github.com/arbor-sh/arbor/internal/shell"
	"github.com/arbor-sh/arbor/internal/store"
)

// ErrNotInWorktree is returned when a delete is requested from the
// primary checkout or from outside any worktree of the repository.
var ErrNotInWorktree = errors.New("not inside a linked worktree")

// DeleteRequest reports a scheduled deletion. Git carries the branch
// resolution outcome; when it is the err variant no marker was written.
type DeleteRequest struct {
	Branch string
	Path   string
	Git    git.Result
}

// RequestDelete schedules the worktree containing dir for teardown. The
// actual removal happens when the owning session goes idle; this only
// resolves the worktree and writes the single-slot pending-delete marker,
// replacing any previous one.
func (m *Manager) RequestDelete(ctx context.Context, dir, reason string) (*DeleteRequest, error) {
	req := &DeleteRequest{}

	req.Git = m.git.Toplevel(ctx, dir)
	if !req.Git.OK() {
		return req, nil
	}
	path := filepath.Clean(req.Git.Stdout)
	if path == filepath.Clean(m.git.Root()) {
		return nil, fmt.Errorf("%w: %s is the primary checkout", ErrNotInWorktree, path)
	}
	req.Path = path

	req.Git = m.git.CurrentBranch(ctx, path)
	if !req.Git.OK() {
		return req, nil
	}
	req.Branch = req.Git.Stdout

	pd := store.PendingDelete{Branch: req.Branch, Path: req.Path}
	if err := m.store.SetPendingDelete(ctx, pd); err != nil {
		return req, err
	}

	m.logger.Info("worktree delete scheduled",
		"branch", req.Branch,
		"path", req.Path,
		"reason", reason)

	if err := m.store.AppendEvent(ctx, store.EventDeleteRequested, req.Branch, reason); err != nil {
		m.logger.Warn("event log write failed", "error", err)
	}

	return req, nil
}

// IdleResult reports what ProcessIdle did. When Processed is false,
// SkipReason explains why the pending delete (if any) was left alone.
type IdleResult struct {
	Processed   bool
	SkipReason  string
	Branch      string
	Path        string
	HooksFailed int
	Committed   bool
	Removed     bool
	RemoveError string
}

// ProcessIdle is the idle-event half of the delete lifecycle. If a
// pending-delete marker exists and the idle session owns the marked
// branch, it runs the preDelete hooks, checkpoints the working tree with
// an allow-empty commit, removes the worktree, and clears the marker and
// the session record.
//
// Hook and commit failures are logged and do not stop the teardown. The
// marker and session record are cleared even when the worktree removal
// itself fails: a stuck directory is recoverable with prune, a stuck
// marker would re-trigger on every idle.
func (m *Manager) ProcessIdle(ctx context.Context, sessionID string) (*IdleResult, error) {
	pd, err := m.store.GetPendingDelete(ctx)
	if err != nil {
		return nil, err
	}
	if pd == nil {
		return &IdleResult{SkipReason: "no pending delete"}, nil
	}

	result := &IdleResult{Branch: pd.Branch, Path: pd.Path}

	// Only the session that owns the marked branch may tear it down; an
	// idle event from an unrelated session leaves the marker in place. A
	// marker with no session record is an orphan and is processed by
	// whichever session observes it.
	owner, err := m.store.GetSessionByBranch(ctx, pd.Branch)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		owner = nil
	case err != nil:
		return nil, err
	case sessionID != "" && owner.ID != sessionID:
		result.SkipReason = "pending delete owned by another session"
		m.logger.Debug("skipping pending delete",
			"branch", pd.Branch,
			"owner", owner.ID,
			"idle_session", sessionID)
		return result, nil
	}

	root := m.git.Root()
	cfg := config.LoadWorktreeConfig(root)
	env := shell.HookEnv{Worktree: pd.Path, Branch: pd.Branch, Source: root}
	result.HooksFailed = m.hooks.RunHooks(ctx, "preDelete", cfg.Hooks.PreDelete, pd.Path, env)

	if res := m.git.StageAll(ctx, pd.Path); !res.OK() {
		m.logger.Warn("stage before delete failed",
			"path", pd.Path,
			"message", res.Message())
	}
	if res := m.git.CommitAllowEmpty(ctx, pd.Path, CommitMessage); res.OK() {
		result.Committed = true
	} else {
		m.logger.Warn("checkpoint commit failed",
			"path", pd.Path,
			"message", res.Message())
	}

	if res := m.git.RemoveWorktree(ctx, pd.Path); res.OK() {
		result.Removed = true
	} else {
		result.RemoveError = res.Message()
		m.logger.Error("worktree remove failed",
			"path", pd.Path,
			"message", result.RemoveError)
	}

	if err := m.store.ClearPendingDelete(ctx); err != nil {
		return result, err
	}
	if err := m.store.RemoveSession(ctx, pd.Branch); err != nil {
		return result, err
	}
	result.Processed = true

	m.logger.Info("worktree deleted",
		"branch", pd.Branch,
		"path", pd.Path,
		"removed", result.Removed)

	if err := m.store.AppendEvent(ctx, store.EventDelete, pd.Branch, pd.Path); err != nil {
		m.logger.Warn("event log write failed", "error", err)
	}
	if owner != nil {
		m.appendSessionLog(ctx, owner.ID,
			fmt.Sprintf("Removed worktree for branch %s", pd.Branch))
	}

	return result, nil
}
