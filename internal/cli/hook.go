package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/core/git"
	"github.com/arbor-sh/arbor/internal/core/project"
	"github.com/arbor-sh/arbor/internal/hook"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Handle host lifecycle events",
	Long: `Handle lifecycle events from the host assistant. The host invokes
these subcommands with a JSON event envelope on stdin and reads a JSON
reply from stdout. Humans normally never call them directly.`,
}

func init() {
	rootCmd.AddCommand(hookCmd)

	hookSubcommands := []struct {
		use   string
		short string
		event hook.EventType
	}{
		{"session-idle", "Handle a session going idle", hook.EventSessionIdle},
		{"session-created", "Handle a new session", hook.EventSessionCreated},
		{"session-error", "Handle a session error", hook.EventSessionError},
	}

	for _, sub := range hookSubcommands {
		event := sub.event
		hookCmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runHookEvent(cmd, event)
			},
		})
	}

	hookCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered event handlers",
		RunE:  runHookList,
	})
}

// runHookEvent reads the event envelope from stdin, dispatches it, and
// writes the reply to stdout. The subcommand decides the event type; a
// type in the envelope itself is trusted only when the subcommand's
// slot is empty, which keeps a single generic host binding working.
//
// Outside a git repository the reply is an empty object rather than an
// error: the host registers the hook globally and most sessions have
// nothing to do with worktrees.
func runHookEvent(cmd *cobra.Command, event hook.EventType) error {
	if deps == nil || deps.HookProtocol == nil || deps.HookRegistry == nil {
		return fmt.Errorf("hook system not initialized")
	}

	input, err := deps.HookProtocol.ReadInput(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read hook input: %w", err)
	}
	if input.Type == "" {
		input.Type = event
	}

	if err := deps.EnsureProject(cmd.Context()); err != nil {
		if errors.Is(err, git.ErrNotRepository) || errors.Is(err, project.ErrNotInProject) {
			return deps.HookProtocol.WriteOutput(cmd.OutOrStdout(), nil)
		}
		return err
	}

	// No deadline on the dispatch: session-idle runs user preDelete hooks
	// to completion and the teardown sequence must not be cut short. The
	// context still carries the process signal cancellation.
	output, err := deps.HookRegistry.Dispatch(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("dispatch %s: %w", input.Type, err)
	}

	if writeErr := deps.HookProtocol.WriteOutput(cmd.OutOrStdout(), output); writeErr != nil {
		return fmt.Errorf("write hook output: %w", writeErr)
	}
	return nil
}

// runHookList displays the registered handlers per event type.
func runHookList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if deps == nil || deps.HookRegistry == nil {
		_, _ = fmt.Fprintln(out, renderInfoCard("Event Handlers", "Hook system not initialized."))
		return nil
	}

	// Handler registration happens in EnsureProject; outside a project
	// the registry is legitimately empty.
	if err := deps.EnsureProject(cmd.Context()); err != nil &&
		!errors.Is(err, git.ErrNotRepository) && !errors.Is(err, project.ErrNotInProject) {
		return err
	}

	var pairs []kvPair
	total := 0
	for _, event := range hook.ValidEventTypes() {
		count := len(deps.HookRegistry.Handlers(event))
		total += count
		if count > 0 {
			label := "handler"
			if count > 1 {
				label = "handlers"
			}
			pairs = append(pairs, kvPair{string(event), fmt.Sprintf("%d %s", count, label)})
		}
	}

	if total == 0 {
		_, _ = fmt.Fprintln(out, renderInfoCard("Event Handlers", "No handlers registered."))
		return nil
	}
	_, _ = fmt.Fprintln(out, renderCard("Event Handlers", renderKeyValueLines(pairs)))
	return nil
}
