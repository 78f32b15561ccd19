package worktree

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteNow bool

var deleteCmd = &cobra.Command{
	Use:     "delete [reason...]",
	Aliases: []string{"rm"},
	Short:   "Schedule the current worktree for deletion",
	Long: `Schedule the worktree containing the current directory for
deletion. The worktree stays in place until the owning session goes
idle; --now runs the teardown immediately instead of waiting.`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteNow, "now", false, "tear down immediately instead of waiting for idle")
}

func runDelete(cmd *cobra.Command, args []string) error {
	p, err := provider()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	req, err := p.RequestDelete(cmd.Context(), cwd, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if req.Branch == "" {
		return fmt.Errorf("cannot resolve worktree: %s", req.Git.Message())
	}

	out := cmd.OutOrStdout()
	if !deleteNow {
		_, _ = fmt.Fprintln(out, wtSuccessBox("Deletion scheduled", []wtPair{
			{"Branch", req.Branch},
			{"Path", req.Path},
			{"When", "next session idle"},
		}))
		return nil
	}

	// Immediate mode reuses the idle path so the same hooks, checkpoint
	// commit, and bookkeeping apply. The empty session ID bypasses the
	// ownership check; a human at the terminal outranks the idle timer.
	result, err := p.ProcessIdle(cmd.Context(), "")
	if err != nil {
		return err
	}
	if !result.Processed {
		return fmt.Errorf("teardown skipped: %s", result.SkipReason)
	}

	if !result.Removed {
		_, _ = fmt.Fprintln(out, wtWarnLine(fmt.Sprintf(
			"state cleared but removal failed: %s; run arbor worktree prune", result.RemoveError)))
		return nil
	}
	_, _ = fmt.Fprintln(out, wtSuccessBox("Worktree removed", []wtPair{
		{"Branch", result.Branch},
		{"Path", result.Path},
	}))
	return nil
}
