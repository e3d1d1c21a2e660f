package components

import (
	"budgetdeck/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. The right side shows
// data provenance (server fetch time or cached-snapshot notice) and a
// saving indicator while a push is in flight.
func RenderStatusBar(width int, provenance string, pushing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"
	if pushing {
		saving := lipgloss.NewStyle().Foreground(t.Orange).Render("saving…")
		left += "  " + saving
	}

	right := ""
	if provenance != "" {
		right = provenance + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	var bar = left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
