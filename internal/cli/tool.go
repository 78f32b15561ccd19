package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/core/git"
	"github.com/arbor-sh/arbor/internal/core/worktree"
)

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Run host tool invocations",
	Long: `Run tool invocations from the host assistant. Each subcommand reads
a JSON request on stdin and writes a JSON response on stdout. The
response always carries a human-readable message; expected failures
(bad branch name, git refusing the operation) are reported in the
message with a zero exit so the agent can read and react to them.`,
}

// toolInput is the JSON request envelope for tool subcommands. Fields
// are a union; each subcommand reads the ones it needs.
type toolInput struct {
	SessionID  string `json:"sessionID,omitempty"`
	Branch     string `json:"branch,omitempty"`
	BaseBranch string `json:"baseBranch,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Directory  string `json:"directory,omitempty"`
}

// toolOutput is the JSON response envelope.
type toolOutput struct {
	Message string `json:"message"`
}

func init() {
	rootCmd.AddCommand(toolCmd)

	toolCmd.AddCommand(&cobra.Command{
		Use:   "worktree-create",
		Short: "Create a worktree and fork the requesting session",
		RunE:  runToolWorktreeCreate,
	})
	toolCmd.AddCommand(&cobra.Command{
		Use:   "worktree-delete",
		Short: "Schedule the current worktree for deletion",
		RunE:  runToolWorktreeDelete,
	})
}

// readToolInput decodes the request envelope. Empty stdin is a valid
// empty request.
func readToolInput(r io.Reader) (*toolInput, error) {
	data, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read tool input: %w", err)
	}
	input := &toolInput{}
	if len(data) == 0 {
		return input, nil
	}
	if err := json.Unmarshal(data, input); err != nil {
		return nil, fmt.Errorf("parse tool input: %w", err)
	}
	return input, nil
}

// writeToolOutput encodes the response envelope, newline-terminated.
func writeToolOutput(w io.Writer, message string) error {
	data, err := json.Marshal(toolOutput{Message: message})
	if err != nil {
		return fmt.Errorf("encode tool output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// runToolWorktreeCreate provisions a worktree for the requested branch.
// The branch name is validated before any project setup so a malformed
// request touches nothing. Store and fork failures return a real error;
// everything the agent can act on goes into the message.
func runToolWorktreeCreate(cmd *cobra.Command, _ []string) error {
	input, err := readToolInput(cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := git.ValidateBranchName(input.Branch); err != nil {
		return writeToolOutput(cmd.OutOrStdout(), fmt.Sprintf("Invalid branch name: %s", err))
	}

	if err := deps.EnsureProject(cmd.Context()); err != nil {
		return err
	}

	result, err := deps.Manager.Create(cmd.Context(), worktree.CreateOptions{
		Branch:    input.Branch,
		Base:      input.BaseBranch,
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, git.ErrInvalidBranchName) {
			return writeToolOutput(cmd.OutOrStdout(), fmt.Sprintf("Invalid branch name: %s", err))
		}
		return err
	}
	if !result.Git.OK() {
		return writeToolOutput(cmd.OutOrStdout(),
			fmt.Sprintf("git worktree add failed: %s", result.Git.Message()))
	}

	return writeToolOutput(cmd.OutOrStdout(), createSummary(result))
}

// createSummary builds the agent-facing description of a successful
// create.
func createSummary(result *worktree.CreateResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Created worktree for branch %s at %s.", result.Branch, result.Path)
	if result.BranchCreated {
		b.WriteString(" The branch was created.")
	}
	if result.FilesCopied > 0 || result.DirsLinked > 0 {
		fmt.Fprintf(&b, " Synced %d files and %d linked directories.", result.FilesCopied, result.DirsLinked)
	}
	if result.HooksFailed > 0 {
		fmt.Fprintf(&b, " %d postCreate hook(s) failed; check the worktree before relying on it.", result.HooksFailed)
	}
	if result.Fork != nil {
		fmt.Fprintf(&b, " Forked session %s now owns the worktree.", result.Fork.ForkedID)
	}
	return b.String()
}

// runToolWorktreeDelete schedules the containing worktree for removal.
// Nothing is deleted here; teardown happens when the owning session
// goes idle.
func runToolWorktreeDelete(cmd *cobra.Command, _ []string) error {
	input, err := readToolInput(cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := deps.EnsureProject(cmd.Context()); err != nil {
		return err
	}

	dir := input.Directory
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
	}

	req, err := deps.Manager.RequestDelete(cmd.Context(), dir, input.Reason)
	if err != nil {
		if errors.Is(err, worktree.ErrNotInWorktree) {
			return writeToolOutput(cmd.OutOrStdout(),
				"Not inside a linked worktree; the primary checkout is never deleted.")
		}
		return err
	}
	if req.Branch == "" {
		return writeToolOutput(cmd.OutOrStdout(),
			fmt.Sprintf("Could not resolve the worktree: %s", req.Git.Message()))
	}

	return writeToolOutput(cmd.OutOrStdout(), fmt.Sprintf(
		"Worktree for branch %s is scheduled for deletion; it will be removed when this session goes idle.",
		req.Branch))
}
