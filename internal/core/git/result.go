package git

// Result is the outcome of one git invocation. A failed command is a value,
// not a returned Go error: Err records the cause, Stderr the captured
// diagnostics, and callers branch on OK(). The only failures that are not
// command failures are a missing git binary and an expired context, whose
// Err wraps the corresponding sentinel.
type Result struct {
	// Args is the argv passed to git, without the leading "git".
	Args []string

	// Stdout is the captured standard output, trailing newlines trimmed.
	Stdout string

	// Stderr is the captured standard error, trailing newlines trimmed.
	Stderr string

	// ExitCode is the process exit code; -1 when the process never ran.
	ExitCode int

	// Err is nil on success.
	Err error
}

// OK reports whether the command succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Message returns the most useful human-readable failure description:
// stderr when git produced any, the wrapped error otherwise. Empty on
// success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Err.Error()
}
