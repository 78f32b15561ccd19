package worktree

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/core/project"
)

var openCmd = &cobra.Command{
	Use:   "open <branch>",
	Short: "Open a terminal session in a worktree",
	Long: `Open (or attach to) a tmux session rooted in the worktree of the
given branch. The session is named after the worktree directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	p, err := provider()
	if err != nil {
		return err
	}
	if OpenSession == nil {
		return fmt.Errorf("terminal integration not available")
	}

	infos, err := p.List(cmd.Context())
	if err != nil {
		return err
	}

	branch := args[0]
	for _, info := range infos {
		if info.Branch == branch {
			// The hashed identifier keeps session names unique across
			// projects with identically named worktree directories.
			return OpenSession(cmd.Context(), project.ID(info.Path), info.Path)
		}
	}
	return fmt.Errorf("no worktree for branch %q; create one with: arbor worktree create %s", branch, branch)
}
