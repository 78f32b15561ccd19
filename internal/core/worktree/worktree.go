// Package worktree orchestrates the worktree lifecycle: provisioning a
// worktree with synced files and a forked session, scheduling deletion,
// and tearing the worktree down when its owning session goes idle.
//
// Error reporting runs on two channels. Git command failures are carried
// as git.Result values inside the returned structs and become the tool's
// human-readable message; the error return is reserved for validation
// failures and infrastructure failures (store, session fork), which abort
// the invocation.
package worktree

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/arbor-sh/arbor/internal/core/git"
	"github.com/arbor-sh/arbor/internal/filesync"
	"github.com/arbor-sh/arbor/internal/session"
	"github.com/arbor-sh/arbor/internal/shell"
	"github.com/arbor-sh/arbor/internal/store"
)

// CommitMessage is the subject of the automatic checkpoint commit made
// before a worktree is removed.
const CommitMessage = "chore: checkpoint before worktree delete"

// Manager wires the git wrapper, the state store, the file sync step, the
// hook runner, and the session fork orchestrator into lifecycle
// operations. Operations within one invocation run strictly sequentially.
type Manager struct {
	git    *git.Git
	store  *store.Store
	syncer *filesync.Syncer
	hooks  *shell.Runner
	forker *session.Forker
	client session.Client
	logger *slog.Logger
}

// ManagerConfig carries the Manager's collaborators. Git and Store are
// required; Syncer and Hooks default when nil; Forker and Client may stay
// nil when no host API is reachable, which disables session forking and
// transcript logging.
type ManagerConfig struct {
	Git    *git.Git
	Store  *store.Store
	Syncer *filesync.Syncer
	Hooks  *shell.Runner
	Forker *session.Forker
	Client session.Client
}

// NewManager creates a Manager from cfg.
func NewManager(cfg ManagerConfig) *Manager {
	m := &Manager{
		git:    cfg.Git,
		store:  cfg.Store,
		syncer: cfg.Syncer,
		hooks:  cfg.Hooks,
		forker: cfg.Forker,
		client: cfg.Client,
		logger: slog.Default().With("module", "worktree"),
	}
	if m.syncer == nil {
		m.syncer = filesync.New()
	}
	if m.hooks == nil {
		m.hooks = shell.NewRunner()
	}
	return m
}

// WorktreePath computes the deterministic worktree location for a branch:
// a sibling directory of the repository named <repo>-worktrees, with the
// branch's slashes flattened to dashes.
func WorktreePath(repoRoot, branch string) string {
	repoRoot = filepath.Clean(repoRoot)
	dirName := strings.ReplaceAll(branch, "/", "-")
	return filepath.Join(filepath.Dir(repoRoot), filepath.Base(repoRoot)+"-worktrees", dirName)
}
