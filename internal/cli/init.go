package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/cli/wizard"
	"github.com/arbor-sh/arbor/internal/config"
	"github.com/arbor-sh/arbor/internal/core/project"
	"github.com/arbor-sh/arbor/internal/defs"
)

var (
	initNonInteractive bool
	initForce          bool
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Set up a project for worktree sessions",
	Long: `Set up a project for worktree sessions: creates the .opencode
directory, the state directory for the session database, and the
worktree.jsonc configuration. On an interactive terminal a short
questionnaire seeds the configuration; otherwise a commented template
is written for hand editing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false,
		"skip the questionnaire and write the commented template")
	initCmd.Flags().BoolVar(&initForce, "force", false,
		"overwrite an existing worktree configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	root, err := initRoot(args)
	if err != nil {
		return err
	}

	cfgPath := config.WorktreeConfigPath(root)
	if _, statErr := os.Stat(cfgPath); statErr == nil && !initForce {
		_, _ = fmt.Fprintln(out, renderInfoCard("Already Initialized",
			fmt.Sprintf("%s exists; re-run with --force to overwrite.", cfgPath)))
		return nil
	}

	stateDir := filepath.Join(root, defs.OpencodeDir, defs.StateSubdir)
	if err := os.MkdirAll(stateDir, defs.DirPerm); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	if initNonInteractive || !isatty.IsTerminal(os.Stdin.Fd()) {
		// LoadWorktreeConfig writes the commented template when the file
		// is missing.
		if initForce {
			_ = os.Remove(cfgPath)
		}
		config.LoadWorktreeConfig(root)
		_, _ = fmt.Fprintln(out, renderSuccessCard("Project initialized",
			renderKeyValueLines([]kvPair{
				{"Config", cfgPath},
				{"State", stateDir},
			}),
			cliMuted.Render("Edit worktree.jsonc to configure file sync and lifecycle hooks.")))
		return nil
	}

	answers, err := wizard.RunWithDefaults()
	if err != nil {
		if errors.Is(err, wizard.ErrCancelled) {
			_, _ = fmt.Fprintln(out, renderInfoCard("Cancelled", "No files were written."))
			return nil
		}
		return err
	}

	cfg := config.DefaultWorktreeConfig()
	cfg.Sync.CopyFiles = answers.CopyFiles
	cfg.Sync.SymlinkDirs = answers.SymlinkDirs
	cfg.Hooks.PostCreate = answers.PostCreate
	cfg.Hooks.PreDelete = answers.PreDelete
	if err := config.WriteWorktreeConfig(root, cfg); err != nil {
		return err
	}

	if answers.HostURL != "" {
		deps.Settings.Host.URL = answers.HostURL
		if err := config.SaveSettings(deps.Settings); err != nil {
			deps.Logger.Warn("cannot save global settings", "error", err)
		}
	}

	_, _ = fmt.Fprintln(out, renderSuccessCard("Project initialized",
		renderKeyValueLines([]kvPair{
			{"Config", cfgPath},
			{"State", stateDir},
			{"Copied files", fmt.Sprintf("%d", len(cfg.Sync.CopyFiles))},
			{"Linked dirs", fmt.Sprintf("%d", len(cfg.Sync.SymlinkDirs))},
		})))
	return nil
}

// initRoot resolves the target directory: the positional argument when
// given, otherwise the enclosing project root so re-running init from a
// subdirectory does not scaffold a nested project. Falls back to the
// current directory for a fresh project.
func initRoot(args []string) (string, error) {
	if len(args) == 1 {
		return filepath.Abs(args[0])
	}
	return project.FindProjectRootOrCurrent()
}
