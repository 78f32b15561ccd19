package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/update"
	"github.com/arbor-sh/arbor/pkg/version"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer arbor release",
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	current := version.GetVersion()

	if deps != nil && deps.Settings != nil && !deps.Settings.Update.Check {
		_, _ = fmt.Fprintln(out, renderInfoCard("Checks Disabled",
			"Update checks are turned off in the global settings."))
		return nil
	}

	checker := update.NewChecker(os.Getenv(update.EnvAPIURL), nil)
	available, info, err := checker.IsUpdateAvailable(cmd.Context(), current)
	if err != nil {
		return err
	}

	if !available {
		_, _ = fmt.Fprintln(out, renderInfoCard("Up To Date",
			fmt.Sprintf("arbor %s is the newest release.", current)))
		return nil
	}

	pairs := []kvPair{
		{"Current", current},
		{"Latest", info.Version},
		{"Published", info.Date.Format("2006-01-02")},
	}
	if info.URL != "" {
		pairs = append(pairs, kvPair{"Download", info.URL})
	}
	_, _ = fmt.Fprintln(out, renderCard("Update Available", renderKeyValueLines(pairs)))
	return nil
}
