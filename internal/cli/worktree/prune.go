package worktree

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Clean up stale worktree entries and orphaned sessions",
	Long: `Drop git's administrative entries for worktree directories that no
longer exist, and remove session records whose worktree is gone.`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, _ []string) error {
	p, err := provider()
	if err != nil {
		return err
	}

	result, err := p.Prune(cmd.Context())
	if err != nil {
		return err
	}
	if !result.Git.OK() {
		return fmt.Errorf("git worktree prune failed: %s", result.Git.Message())
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), wtSuccessBox("Pruned", []wtPair{
		{"Sessions removed", fmt.Sprintf("%d", result.SessionsRemoved)},
	}))
	return nil
}
