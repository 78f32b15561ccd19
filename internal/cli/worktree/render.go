package worktree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	core "github.com/arbor-sh/arbor/internal/core/worktree"
)

// Styles for the worktree command output, matching the parent CLI
// palette.
var (
	wtAccent  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
	wtOK      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	wtCaution = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	wtDim     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	wtFrame   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
)

// wtPair is one label/value detail line.
type wtPair struct {
	label string
	value string
}

// wtSuccessBox renders a bordered confirmation with aligned detail
// lines.
func wtSuccessBox(title string, details []wtPair) string {
	width := 0
	for _, d := range details {
		width = max(width, len(d.label))
	}

	var b strings.Builder
	b.WriteString(wtOK.Render("✓") + " " + wtAccent.Bold(true).Render(title))
	for _, d := range details {
		b.WriteString("\n")
		b.WriteString(wtDim.Render(d.label + strings.Repeat(" ", width-len(d.label))))
		b.WriteString("  " + d.value)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(wtFrame.GetForeground()).
		Padding(0, 2).
		Render(b.String())
}

// wtWorktreeTable renders one line per worktree: a marker, the branch,
// the path, and the session state.
func wtWorktreeTable(infos []core.Info) string {
	branchWidth := 0
	for _, info := range infos {
		branchWidth = max(branchWidth, len(displayBranch(info)))
	}

	var b strings.Builder
	b.WriteString(wtSectionTitle("Worktrees"))
	for _, info := range infos {
		b.WriteString("\n  ")
		b.WriteString(wtMarker(info))
		b.WriteString(" ")

		branch := displayBranch(info)
		b.WriteString(branch + strings.Repeat(" ", branchWidth-len(branch)))
		b.WriteString("  " + wtDim.Render(info.Path))

		switch {
		case info.PendingDelete:
			b.WriteString("  " + wtCaution.Render("pending delete"))
		case info.Session != nil:
			b.WriteString("  " + wtDim.Render("session "+info.Session.ID))
		}
	}
	return b.String()
}

// wtMarker returns the state glyph for a worktree line.
func wtMarker(info core.Info) string {
	switch {
	case info.PendingDelete:
		return wtCaution.Render("~")
	case info.Session != nil:
		return wtOK.Render("*")
	default:
		return wtDim.Render("-")
	}
}

// displayBranch names the line: the branch, or the short head for a
// detached worktree.
func displayBranch(info core.Info) string {
	if info.Detached {
		head := info.Head
		if len(head) > 8 {
			head = head[:8]
		}
		return fmt.Sprintf("(detached %s)", head)
	}
	return info.Branch
}

// wtSectionTitle styles a section heading.
func wtSectionTitle(title string) string {
	return wtAccent.Bold(true).Render(title)
}

// wtWarnLine styles a cautionary one-liner.
func wtWarnLine(msg string) string {
	return wtCaution.Render("! ") + msg
}

// wtMutedLine styles low-emphasis text.
func wtMutedLine(msg string) string {
	return wtDim.Render(msg)
}
