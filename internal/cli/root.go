package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/cli/worktree"
	"github.com/arbor-sh/arbor/internal/tmux"
	"github.com/arbor-sh/arbor/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor: git worktree sessions for your coding agent",
	Long: `Arbor manages isolated git worktrees for parallel coding agent
sessions. Each worktree gets its own branch, a forked session with the
plan carried over, and a tracked lifecycle: creation, scheduled delete,
and cleanup when the owning session goes idle.

The host assistant drives arbor through the tool and hook subcommands;
the worktree subcommand is the same machinery for humans.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute initializes dependencies and runs the root command. The
// context is cancelled on SIGINT/SIGTERM so in-flight git and store
// operations unwind cleanly.
func Execute() error {
	InitDependencies()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if closeErr := deps.Close(); closeErr != nil {
		deps.Logger.Warn("store close failed", "error", closeErr)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("arbor %s\n", version.GetVersion()))

	// The worktree subcommand tree needs project-scoped dependencies;
	// they are initialized lazily so "arbor worktree --help" works
	// outside a repository.
	worktree.WorktreeCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if deps == nil {
			return fmt.Errorf("dependencies not initialized")
		}
		if err := deps.EnsureProject(cmd.Context()); err != nil {
			return err
		}
		worktree.WorktreeProvider = deps.Manager
		worktree.OpenSession = openTmuxSession
		return nil
	}

	rootCmd.AddCommand(worktree.WorktreeCmd)
}

// openTmuxSession attaches a tmux session rooted in a worktree
// directory. Used by "arbor worktree open".
func openTmuxSession(ctx context.Context, name, dir string) error {
	_, err := deps.Tmux.Open(ctx, tmux.OpenConfig{Name: name, Dir: dir})
	return err
}
