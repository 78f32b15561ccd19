package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Timeouts for git subprocess calls. Worktree add/remove touch many files
// and get a wider bound than plain queries.
const (
	DefaultGitTimeout = 10 * time.Second
	WorktreeTimeout   = 30 * time.Second
)

// run executes git with the given argv in dir and returns a tagged Result.
// Arguments are always discrete argv elements; nothing is routed through a
// shell, so caller-supplied branch and path values cannot be reinterpreted.
func run(ctx context.Context, dir string, args ...string) Result {
	res := Result{Args: args, ExitCode: -1}

	gitPath, err := exec.LookPath("git")
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrSystemGitNotFound, err)
		return res
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0", // never prompt for credentials
		"LC_ALL=C",              // stable output for parsing
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	res.Stdout = strings.TrimRight(stdout.String(), "\n\r")
	res.Stderr = strings.TrimRight(stderr.String(), "\n\r")

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			res.Err = fmt.Errorf("git %s: %w", args[0], ctxErr)
		} else {
			res.Err = fmt.Errorf("git %s: %s: %w", args[0], res.Stderr, runErr)
		}
		return res
	}

	res.ExitCode = 0
	return res
}
