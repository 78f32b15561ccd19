package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <session-id>",
	Short: "Show the plan carried into a forked session",
	Long: `Show the plan document for a session. Forked worktree sessions get a
copy of the source session's plan; this renders it for review.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if err := deps.EnsureProject(cmd.Context()); err != nil {
		return err
	}

	path := deps.Workspace.PlanPath(args[0])
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(out, renderInfoCard("No Plan",
			fmt.Sprintf("Session %s has no plan document.", args[0])))
		return nil
	}
	if err != nil {
		return fmt.Errorf("read plan: %w", err)
	}

	// Raw markdown when piped, rendered on a terminal.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		_, _ = fmt.Fprint(out, string(data))
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	rendered, err := renderer.Render(string(data))
	if err != nil {
		return fmt.Errorf("render plan: %w", err)
	}
	_, _ = fmt.Fprint(out, rendered)
	return nil
}
