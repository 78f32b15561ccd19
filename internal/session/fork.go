package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/arbor-sh/arbor/internal/filesync"
)

// maxParentDepth bounds the parent-chain walk so a cycle or an unbounded
// chain cannot hang root resolution.
const maxParentDepth = 10

// RootResolver resolves the root of a session's parent chain.
type RootResolver func(ctx context.Context, id string) (*Session, error)

// Forker duplicates a conversation session for a new worktree and
// provisions its workspace. Partial failures are rolled back with
// compensating actions so no orphaned session or directory survives a
// failed fork.
type Forker struct {
	client      Client
	ws          *Workspace
	resolveRoot RootResolver
	logger      *slog.Logger
}

// ForkerOption configures a Forker.
type ForkerOption func(*Forker)

// WithRootResolver sets a custom parent-chain resolver (used for testing).
func WithRootResolver(fn RootResolver) ForkerOption {
	return func(f *Forker) {
		f.resolveRoot = fn
	}
}

// WithForkerLogger sets the logger for the forker.
func WithForkerLogger(l *slog.Logger) ForkerOption {
	return func(f *Forker) {
		f.logger = l
	}
}

// NewForker creates a Forker using the given host client and workspace.
func NewForker(client Client, ws *Workspace, opts ...ForkerOption) *Forker {
	f := &Forker{
		client: client,
		ws:     ws,
		logger: slog.Default().With("module", "session.fork"),
	}
	f.resolveRoot = f.ResolveRootSession
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ResolveRootSession walks the parentID chain from id toward the root,
// following at most maxParentDepth links.
func (f *Forker) ResolveRootSession(ctx context.Context, id string) (*Session, error) {
	sess, err := f.client.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve root of %s: %w", id, err)
	}

	for range maxParentDepth {
		if sess.ParentID == "" {
			break
		}
		parent, err := f.client.GetSession(ctx, sess.ParentID)
		if err != nil {
			return nil, fmt.Errorf("resolve root of %s: %w", id, err)
		}
		sess = parent
	}

	return sess, nil
}

// Fork duplicates sourceID on the host, creates the forked session's
// workspace and delegations directories, and best-effort copies the root
// session's plan.md and delegations tree into them. Any error after the
// host fork triggers compensating cleanup (remove the new directories,
// delete the forked session) before the original error is returned.
func (f *Forker) Fork(ctx context.Context, sourceID string) (*ForkResult, error) {
	root, err := f.resolveRoot(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("fork %s: %w", sourceID, err)
	}

	forked, err := f.client.ForkSession(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("fork %s: %w", sourceID, err)
	}

	f.logger.Debug("session forked",
		"source", sourceID,
		"forked", forked.ID,
		"root", root.ID)

	result := &ForkResult{
		ForkedSession: *forked,
		RootSessionID: root.ID,
	}
	if err := f.copyArtifacts(root.ID, forked.ID, result); err != nil {
		f.rollback(ctx, forked.ID)
		return nil, fmt.Errorf("fork %s: provision workspace for %s: %w", sourceID, forked.ID, err)
	}

	return result, nil
}

// copyArtifacts provisions the forked session's directories and copies
// whatever artifacts the root session has. A missing source is not an
// error; an actual filesystem failure is, and the caller rolls back.
func (f *Forker) copyArtifacts(rootID, forkedID string, result *ForkResult) error {
	if err := f.ws.EnsureDirs(forkedID); err != nil {
		return err
	}

	planSrc := f.ws.PlanPath(rootID)
	switch _, err := os.Stat(planSrc); {
	case err == nil:
		if err := filesync.CopyFile(planSrc, f.ws.PlanPath(forkedID)); err != nil {
			return fmt.Errorf("copy plan: %w", err)
		}
		result.PlanCopied = true
	case errors.Is(err, fs.ErrNotExist):
		f.logger.Debug("no plan to copy", "session", rootID)
	default:
		return fmt.Errorf("stat plan: %w", err)
	}

	delegSrc := f.ws.DelegationsDir(rootID)
	switch info, err := os.Stat(delegSrc); {
	case err == nil && info.IsDir():
		if err := filesync.CopyTree(delegSrc, f.ws.DelegationsDir(forkedID)); err != nil {
			return fmt.Errorf("copy delegations: %w", err)
		}
		result.DelegationsCopied = true
	case errors.Is(err, fs.ErrNotExist):
		f.logger.Debug("no delegations to copy", "session", rootID)
	case err != nil:
		return fmt.Errorf("stat delegations: %w", err)
	}

	return nil
}

// rollback undoes partial fork provisioning. Every cleanup step runs
// regardless of earlier failures; failures are logged, never re-raised, so
// the caller's original error stays intact.
func (f *Forker) rollback(ctx context.Context, forkedID string) {
	if err := f.ws.RemoveDirs(forkedID); err != nil {
		f.logger.Warn("fork rollback: remove workspace dirs failed",
			"session", forkedID,
			"error", err)
	}
	if err := f.client.DeleteSession(ctx, forkedID); err != nil {
		f.logger.Warn("fork rollback: delete forked session failed",
			"session", forkedID,
			"error", err)
	}
}
