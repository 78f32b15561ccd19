package worktree

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List worktrees and their sessions",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	p, err := provider()
	if err != nil {
		return err
	}

	infos, err := p.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(infos) <= 1 {
		_, _ = fmt.Fprintln(out, wtMutedLine("No linked worktrees. Create one with: arbor worktree create <branch>"))
		return nil
	}

	_, _ = fmt.Fprintln(out, wtWorktreeTable(infos))
	return nil
}
