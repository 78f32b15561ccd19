package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DefaultQuestions returns the arbor init questionnaire.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:          "copy_files",
			Title:       "Files to copy into each worktree",
			Description: "Comma-separated, relative to the repository root. Untracked local files like .env.local belong here.",
			Placeholder: ".env.local, .env.development",
			List:        true,
		},
		{
			ID:          "symlink_dirs",
			Title:       "Directories to symlink into each worktree",
			Description: "Comma-separated. Heavy build artifacts like node_modules are shared instead of copied.",
			Placeholder: "node_modules",
			List:        true,
		},
		{
			ID:          "post_create",
			Title:       "Commands to run after a worktree is created",
			Description: "Comma-separated shell commands, run inside the new worktree.",
			Placeholder: "npm install",
			List:        true,
		},
		{
			ID:          "pre_delete",
			Title:       "Commands to run before a worktree is deleted",
			Description: "Comma-separated shell commands, run inside the doomed worktree.",
			Placeholder: "",
			List:        true,
		},
		{
			ID:          "host_url",
			Title:       "Host assistant API address",
			Description: "Leave empty for the default (http://127.0.0.1:4096).",
			Placeholder: "",
		},
	}
}

// Run asks each question as its own huh.Form and collects the answers.
// Sequential single-field forms keep long descriptions readable and make
// Ctrl+C behave the same on every step.
func Run(questions []Question) (*Result, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := &Result{}
	theme := newWizardTheme()

	for i := range questions {
		q := &questions[i]

		var answer string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(q.Title).
				Description(q.Description).
				Placeholder(q.Placeholder).
				Value(&answer),
		)).WithTheme(theme)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}

		apply(result, q, answer)
	}

	return result, nil
}

// RunWithDefaults runs the standard questionnaire.
func RunWithDefaults() (*Result, error) {
	return Run(DefaultQuestions())
}

// apply stores one answer on the result.
func apply(result *Result, q *Question, answer string) {
	switch q.ID {
	case "copy_files":
		result.CopyFiles = SplitList(answer)
	case "symlink_dirs":
		result.SymlinkDirs = SplitList(answer)
	case "post_create":
		result.PostCreate = SplitList(answer)
	case "pre_delete":
		result.PreDelete = SplitList(answer)
	case "host_url":
		result.HostURL = strings.TrimSpace(answer)
	}
}

// SplitList parses a comma-separated answer into trimmed entries,
// dropping empties. An all-whitespace answer yields an empty list.
func SplitList(answer string) []string {
	items := []string{}
	for _, part := range strings.Split(answer, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// newWizardTheme matches the CLI card palette.
func newWizardTheme() *huh.Theme {
	theme := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"}
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	theme.Focused.Title = theme.Focused.Title.Foreground(primary).Bold(true)
	theme.Focused.Description = theme.Focused.Description.Foreground(muted)
	theme.Focused.TextInput.Prompt = theme.Focused.TextInput.Prompt.Foreground(primary)
	theme.Blurred.Title = theme.Blurred.Title.Foreground(muted)

	return theme
}
