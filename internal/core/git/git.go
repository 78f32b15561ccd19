// Package git wraps the git subprocess calls needed for worktree lifecycle
// management. Every command returns a tagged Result value rather than a Go
// error, so expected external failures (branch missing, dirty tree, path
// collisions) stay on a separate channel from internal invariant
// violations.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Git issues git commands for a single repository root. Worktree-level
// operations (status, staging, commits) take an explicit dir because they
// run inside individual worktrees rather than the primary checkout.
type Git struct {
	root   string
	logger *slog.Logger
}

// New creates a Git bound to the given repository root. The root is assumed
// to be the repository top level; use ResolveRoot to discover it.
func New(root string) *Git {
	return &Git{
		root:   filepath.Clean(root),
		logger: slog.Default().With("module", "git"),
	}
}

// Root returns the repository root this instance is bound to.
func (g *Git) Root() string {
	return g.root
}

// ResolveRoot resolves the top-level directory of the repository containing
// dir. Returns ErrNotRepository if dir is not inside a git work tree.
func ResolveRoot(ctx context.Context, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	res := run(ctx, abs, "rev-parse", "--show-toplevel")
	if !res.OK() {
		return "", fmt.Errorf("%w: %s", ErrNotRepository, res.Message())
	}
	return filepath.Clean(res.Stdout), nil
}

// Run executes a raw git command in the repository root.
func (g *Git) Run(ctx context.Context, args ...string) Result {
	return run(ctx, g.root, args...)
}

// BranchExists reports whether a local branch exists.
func (g *Git) BranchExists(ctx context.Context, branch string) bool {
	return run(ctx, g.root, "rev-parse", "--verify", "refs/heads/"+branch).OK()
}

// CurrentBranch returns the checked-out branch of dir, which may be the
// primary checkout or any worktree. Detached HEAD is the err variant.
func (g *Git) CurrentBranch(ctx context.Context, dir string) Result {
	return run(ctx, dir, "symbolic-ref", "--short", "HEAD")
}

// Toplevel returns the working-tree root containing dir. Inside a linked
// worktree this is the worktree directory, not the primary checkout.
func (g *Git) Toplevel(ctx context.Context, dir string) Result {
	return run(ctx, dir, "rev-parse", "--show-toplevel")
}

// AddWorktree checks out an existing branch into a new worktree at path.
func (g *Git) AddWorktree(ctx context.Context, path, branch string) Result {
	g.logger.Debug("adding worktree",
		"path", path,
		"branch", branch,
	)
	return run(ctx, g.root, "worktree", "add", path, branch)
}

// AddWorktreeNewBranch creates branch from base (HEAD when base is empty)
// and checks it out into a new worktree at path.
func (g *Git) AddWorktreeNewBranch(ctx context.Context, path, branch, base string) Result {
	if base == "" {
		base = "HEAD"
	}
	g.logger.Debug("adding worktree with new branch",
		"path", path,
		"branch", branch,
		"base", base,
	)
	return run(ctx, g.root, "worktree", "add", "-b", branch, path, base)
}

// RemoveWorktree force-removes the worktree at path. Force is deliberate:
// the delete lifecycle commits pending changes before calling this.
func (g *Git) RemoveWorktree(ctx context.Context, path string) Result {
	g.logger.Debug("removing worktree", "path", path)
	return run(ctx, g.root, "worktree", "remove", "--force", path)
}

// PruneWorktrees removes stale worktree administrative entries.
func (g *Git) PruneWorktrees(ctx context.Context) Result {
	return run(ctx, g.root, "worktree", "prune")
}

// Status returns porcelain status output for dir. A clean tree has an
// empty Stdout.
func (g *Git) Status(ctx context.Context, dir string) Result {
	return run(ctx, dir, "status", "--porcelain")
}

// StageAll stages every change in dir, including untracked files.
func (g *Git) StageAll(ctx context.Context, dir string) Result {
	return run(ctx, dir, "add", "-A")
}

// CommitAllowEmpty records a commit in dir even when nothing is staged,
// so the delete lifecycle always leaves a checkpoint commit behind.
func (g *Git) CommitAllowEmpty(ctx context.Context, dir, message string) Result {
	return run(ctx, dir, "commit", "--allow-empty", "-m", message)
}

// Worktree describes a single entry reported by git worktree list.
type Worktree struct {
	// Path is the absolute worktree directory.
	Path string

	// Head is the commit hash the worktree is at.
	Head string

	// Branch is the short branch name, empty when detached.
	Branch string

	// Detached indicates the worktree has a detached HEAD.
	Detached bool
}

// ListWorktrees returns all worktrees of the repository, primary checkout
// included. Command failure is a Go error here because the caller cannot
// act on a partial list.
func (g *Git) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	res := run(ctx, g.root, "worktree", "list", "--porcelain")
	if !res.OK() {
		return nil, fmt.Errorf("git worktree list: %s", res.Message())
	}
	return parseWorktreeList(res.Stdout), nil
}

// parseWorktreeList parses `git worktree list --porcelain` output. Entries
// are stanzas separated by blank lines:
//
//	worktree /path/to/wt
//	HEAD abc123...
//	branch refs/heads/feature-x
//
// Detached worktrees carry a bare "detached" line instead of "branch".
func parseWorktreeList(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			if current != nil {
				worktrees = append(worktrees, *current)
				current = nil
			}
		case strings.HasPrefix(line, "worktree "):
			if current != nil {
				worktrees = append(worktrees, *current)
			}
			current = &Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "HEAD "):
			if current != nil {
				current.Head = strings.TrimPrefix(line, "HEAD ")
			}
		case strings.HasPrefix(line, "branch "):
			if current != nil {
				ref := strings.TrimPrefix(line, "branch ")
				current.Branch = strings.TrimPrefix(ref, "refs/heads/")
			}
		case line == "detached":
			if current != nil {
				current.Detached = true
			}
		}
	}

	if current != nil {
		worktrees = append(worktrees, *current)
	}
	return worktrees
}
