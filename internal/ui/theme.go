// Package ui provides terminal output primitives for interactive
// commands: headless detection and spinner/progress indicators that fall
// back to plain log lines when no TTY is attached.
package ui

import "os"

// ColorScheme holds the hex colors used by interactive components.
type ColorScheme struct {
	Primary   string
	Secondary string
}

// Theme configures interactive component appearance.
type Theme struct {
	Colors  ColorScheme
	NoColor bool
}

// DefaultTheme returns the standard palette. NO_COLOR in the environment
// disables color entirely.
func DefaultTheme() *Theme {
	return &Theme{
		Colors: ColorScheme{
			Primary:   "#DA7756",
			Secondary: "#10B981",
		},
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// Spinner is an indeterminate activity indicator.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// ProgressBar is a determinate progress indicator.
type ProgressBar interface {
	Increment(n int)
	SetTitle(title string)
	Done()
}

// Progress creates spinners and progress bars appropriate for the
// current terminal.
type Progress interface {
	Start(title string, total int) ProgressBar
	Spinner(title string) Spinner
}
