package worktree

import (
	"fmt"

	"github.com/spf13/cobra"

	core "github.com/arbor-sh/arbor/internal/core/worktree"
	"github.com/arbor-sh/arbor/internal/ui"
)

var (
	createBase    string
	createSession string
)

var createCmd = &cobra.Command{
	Use:   "create <branch>",
	Short: "Create a worktree for a branch",
	Long: `Create a worktree for a branch in the sibling worktrees directory.
The branch is created from --base (default HEAD) when it does not
exist. Configured files are copied in, directories symlinked, and
postCreate hooks run inside the new worktree.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createBase, "base", "", "base branch for a new branch (default HEAD)")
	createCmd.Flags().StringVar(&createSession, "session", "", "host session to fork for the new worktree")
}

func runCreate(cmd *cobra.Command, args []string) error {
	p, err := provider()
	if err != nil {
		return err
	}

	spin := ui.NewProgress(ui.DefaultTheme(), ui.NewHeadlessManager()).
		Spinner(fmt.Sprintf("Creating worktree for %s", args[0]))
	result, err := p.Create(cmd.Context(), core.CreateOptions{
		Branch:    args[0],
		Base:      createBase,
		SessionID: createSession,
	})
	spin.Stop()
	if err != nil {
		return err
	}
	if !result.Git.OK() {
		return fmt.Errorf("git worktree add failed: %s", result.Git.Message())
	}

	details := []wtPair{
		{"Branch", result.Branch},
		{"Path", result.Path},
	}
	if result.BranchCreated {
		details = append(details, wtPair{"Created from", baseLabel(createBase)})
	}
	if result.FilesCopied > 0 {
		details = append(details, wtPair{"Files copied", fmt.Sprintf("%d", result.FilesCopied)})
	}
	if result.DirsLinked > 0 {
		details = append(details, wtPair{"Dirs linked", fmt.Sprintf("%d", result.DirsLinked)})
	}
	if result.Fork != nil {
		details = append(details, wtPair{"Session", result.Fork.ForkedID})
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), wtSuccessBox("Worktree created", details))
	if result.HooksFailed > 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(),
			wtWarnLine(fmt.Sprintf("%d postCreate hook(s) failed", result.HooksFailed)))
	}
	return nil
}

func baseLabel(base string) string {
	if base == "" {
		return "HEAD"
	}
	return base
}
