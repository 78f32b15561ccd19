package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLI palette. Adaptive colors keep cards readable on light and dark
// terminals.
var (
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
	cliBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
)

// kvPair is one label/value line inside a card.
type kvPair struct {
	key   string
	value string
}

// cardStyle returns the rounded-border card container style.
func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder.GetForeground()).
		Padding(0, 2)
}

// renderCard renders content inside a rounded border with a styled title.
func renderCard(title, content string) string {
	titleLine := cliPrimary.Bold(true).Render(title)
	return cardStyle().Render(titleLine + "\n\n" + content)
}

// renderSuccessCard renders a checkmark title with optional detail lines.
func renderSuccessCard(title string, details ...string) string {
	var body strings.Builder
	body.WriteString(cliSuccess.Render("✓") + " " + title)
	for i, d := range details {
		if i == 0 {
			body.WriteString("\n")
		}
		body.WriteString("\n" + d)
	}
	return cardStyle().Render(body.String())
}

// renderErrorCard renders a cross-marked failure message.
func renderErrorCard(title string, details ...string) string {
	var body strings.Builder
	body.WriteString(cliError.Render("✗") + " " + title)
	for i, d := range details {
		if i == 0 {
			body.WriteString("\n")
		}
		body.WriteString("\n" + d)
	}
	return cardStyle().Render(body.String())
}

// renderInfoCard renders a plain informational card.
func renderInfoCard(title, message string) string {
	return renderCard(title, cliMuted.Render(message))
}

// renderKeyValueLines renders aligned label/value pairs.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p.key))
	}

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(cliMuted.Render(p.key + strings.Repeat(" ", width-len(p.key))))
		b.WriteString("  ")
		b.WriteString(p.value)
	}
	return b.String()
}
