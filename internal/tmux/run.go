package tmux

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
)

// RunFunc executes one tmux command with discrete argv elements and
// returns its combined output.
type RunFunc func(ctx context.Context, args ...string) (string, error)

// defaultRun executes tmux via os/exec. Arguments are never passed
// through a shell.
func defaultRun(ctx context.Context, args ...string) (string, error) {
	if _, err := exec.LookPath("tmux"); err != nil {
		return "", ErrTmuxNotFound
	}

	cmd := exec.CommandContext(ctx, "tmux", args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return strings.TrimRight(out.String(), "\n\r"), err
}

// attachRun executes tmux attached to the current terminal, used for
// attach-session and switch-client which need the controlling TTY.
func attachRun(ctx context.Context, args ...string) error {
	if _, err := exec.LookPath("tmux"); err != nil {
		return ErrTmuxNotFound
	}

	cmd := exec.CommandContext(ctx, "tmux", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
