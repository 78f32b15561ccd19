// Package worktree is the human-facing command tree over the worktree
// lifecycle. The host assistant uses the tool and hook surfaces; these
// subcommands expose the same manager to a terminal.
package worktree

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	core "github.com/arbor-sh/arbor/internal/core/worktree"
)

// Provider is the slice of the lifecycle manager the commands need.
// *core.Manager satisfies it; tests install fakes.
type Provider interface {
	Create(ctx context.Context, opts core.CreateOptions) (*core.CreateResult, error)
	RequestDelete(ctx context.Context, dir, reason string) (*core.DeleteRequest, error)
	ProcessIdle(ctx context.Context, sessionID string) (*core.IdleResult, error)
	List(ctx context.Context) ([]core.Info, error)
	Status(ctx context.Context) (*core.StatusReport, error)
	Prune(ctx context.Context) (*core.PruneResult, error)
}

// WorktreeProvider is injected by the parent CLI package before any
// subcommand runs.
var WorktreeProvider Provider

// OpenSession attaches a terminal session in a directory, injected by
// the parent CLI package. Nil when no multiplexer integration exists.
var OpenSession func(ctx context.Context, name, dir string) error

var errNoProvider = errors.New("worktree provider not initialized")

// provider returns the injected Provider or errNoProvider.
func provider() (Provider, error) {
	if WorktreeProvider == nil {
		return nil, errNoProvider
	}
	return WorktreeProvider, nil
}

// WorktreeCmd is the root of the worktree command tree.
var WorktreeCmd = &cobra.Command{
	Use:     "worktree",
	Aliases: []string{"wt"},
	Short:   "Manage worktree sessions",
	Long: `Manage the isolated git worktrees arbor creates for parallel
sessions: create, inspect, schedule for deletion, and clean up.`,
}

func init() {
	WorktreeCmd.AddCommand(createCmd)
	WorktreeCmd.AddCommand(deleteCmd)
	WorktreeCmd.AddCommand(listCmd)
	WorktreeCmd.AddCommand(statusCmd)
	WorktreeCmd.AddCommand(pruneCmd)
	WorktreeCmd.AddCommand(openCmd)
}
