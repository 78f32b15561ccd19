package worktree

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show worktrees, the pending delete, and recent activity",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	p, err := provider()
	if err != nil {
		return err
	}

	report, err := p.Status(cmd.Context())
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(wtWorktreeTable(report.Worktrees))

	if report.Pending != nil {
		b.WriteString("\n")
		b.WriteString(wtWarnLine(fmt.Sprintf(
			"pending delete: %s (removed on next idle)", report.Pending.Branch)))
	}

	if len(report.Events) > 0 {
		b.WriteString("\n\n")
		b.WriteString(wtSectionTitle("Recent activity"))
		for _, ev := range report.Events {
			b.WriteString("\n")
			line := fmt.Sprintf("%s  %-17s %s", ev.At.Format("2006-01-02 15:04"), ev.Kind, ev.Branch)
			if ev.Detail != "" {
				line += "  " + wtMutedLine(ev.Detail)
			}
			b.WriteString("  " + line)
		}
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), b.String())
	return nil
}
