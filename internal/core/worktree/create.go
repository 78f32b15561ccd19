package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/arbor-sh/arbor/internal/config"
	"github.com/arbor-sh/arbor/internal/core/git"
	"github.com/arbor-sh/arbor/internal/defs"
	"github.com/arbor-sh/arbor/internal/shell"
	"github.com/arbor-sh/arbor/internal/store"
)

// CreateOptions parameterizes a worktree provisioning run.
type CreateOptions struct {
	// Branch is the branch to check out into the new worktree. Created
	// from Base when it does not exist yet.
	Branch string

	// Base is the starting point for a new branch. Empty means HEAD.
	Base string

	// SessionID is the host session requesting the worktree. When set and
	// a forker is configured, the session is forked and the fork owns the
	// new worktree. Empty for invocations outside the host (plain CLI).
	SessionID string
}

// CreateResult reports what Create did. Git holds the worktree add
// outcome; when it is the err variant the remaining fields past Path are
// zero because provisioning stopped there.
type CreateResult struct {
	Branch        string
	Path          string
	BranchCreated bool
	Git           git.Result
	FilesCopied   int
	DirsLinked    int
	HooksFailed   int
	Session       *store.Session
	Fork          *ForkOutcome
}

// ForkOutcome is the session fork portion of a create.
type ForkOutcome struct {
	ForkedID          string
	RootSessionID     string
	PlanCopied        bool
	DelegationsCopied bool
}

// Create provisions a worktree for opts.Branch: validates the branch
// name, adds the worktree (creating the branch from base when needed),
// syncs configured files and symlinks from the primary checkout, runs the
// postCreate hooks, forks the requesting session, and records the session
// in the store.
//
// A git failure stops after the add and is reported inside the result,
// not as an error. Errors are reserved for invalid names and for store or
// fork failures.
func (m *Manager) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	if err := git.ValidateBranchName(opts.Branch); err != nil {
		return nil, err
	}
	if opts.Base != "" {
		if err := git.ValidateBranchName(opts.Base); err != nil {
			return nil, fmt.Errorf("base branch: %w", err)
		}
	}

	root := m.git.Root()
	path := WorktreePath(root, opts.Branch)
	result := &CreateResult{Branch: opts.Branch, Path: path}

	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return nil, fmt.Errorf("create worktree parent dir: %w", err)
	}

	if m.git.BranchExists(ctx, opts.Branch) {
		result.Git = m.git.AddWorktree(ctx, path, opts.Branch)
	} else {
		result.BranchCreated = true
		result.Git = m.git.AddWorktreeNewBranch(ctx, path, opts.Branch, opts.Base)
	}
	if !result.Git.OK() {
		m.logger.Error("worktree add failed",
			"branch", opts.Branch,
			"path", path,
			"message", result.Git.Message())
		return result, nil
	}

	m.logger.Info("worktree created",
		"branch", opts.Branch,
		"path", path,
		"new_branch", result.BranchCreated)

	cfg := config.LoadWorktreeConfig(root)
	result.FilesCopied = m.syncer.CopyFiles(root, path, cfg.Sync.CopyFiles, cfg.Sync.Exclude)
	result.DirsLinked = m.syncer.SymlinkDirs(root, path, cfg.Sync.SymlinkDirs, cfg.Sync.Exclude)

	env := shell.HookEnv{Worktree: path, Branch: opts.Branch, Source: root}
	result.HooksFailed = m.hooks.RunHooks(ctx, "postCreate", cfg.Hooks.PostCreate, path, env)

	ownerID, fork, err := m.forkOwner(ctx, opts.SessionID, result)
	if err != nil {
		return result, err
	}
	result.Fork = fork

	sess := store.Session{ID: ownerID, Branch: opts.Branch, Path: path}
	if err := m.store.AddSession(ctx, sess); err != nil {
		return result, err
	}
	result.Session = &sess

	if err := m.store.AppendEvent(ctx, store.EventCreate, opts.Branch, path); err != nil {
		m.logger.Warn("event log write failed", "error", err)
	}
	m.appendSessionLog(ctx, opts.SessionID,
		fmt.Sprintf("Created worktree for branch %s at %s", opts.Branch, path))

	return result, nil
}

// forkOwner decides which session id owns the new worktree. A host
// session with a configured forker gets a fork; otherwise the invoking
// session id is used directly, and a plain CLI create gets a generated
// id so the worktree is still tracked.
func (m *Manager) forkOwner(ctx context.Context, sourceID string, result *CreateResult) (string, *ForkOutcome, error) {
	if sourceID == "" {
		return uuid.NewString(), nil, nil
	}
	if m.forker == nil {
		return sourceID, nil, nil
	}

	fr, err := m.forker.Fork(ctx, sourceID)
	if err != nil {
		return "", nil, fmt.Errorf("worktree %s created at %s, but session fork failed: %w",
			result.Branch, result.Path, err)
	}
	return fr.ForkedSession.ID, &ForkOutcome{
		ForkedID:          fr.ForkedSession.ID,
		RootSessionID:     fr.RootSessionID,
		PlanCopied:        fr.PlanCopied,
		DelegationsCopied: fr.DelegationsCopied,
	}, nil
}

// appendSessionLog best-effort notifies the invoking session's transcript.
func (m *Manager) appendSessionLog(ctx context.Context, sessionID, message string) {
	if m.client == nil || sessionID == "" {
		return
	}
	if err := m.client.AppendLog(ctx, sessionID, message); err != nil {
		m.logger.Debug("session log append failed",
			"session", sessionID,
			"error", err)
	}
}
