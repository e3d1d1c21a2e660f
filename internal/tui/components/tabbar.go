package components

import (
	"strings"

	"budgetdeck/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is a single entry in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs. Keys are digits so letter keys stay
// free for row editing on the accounts tab.
var Tabs = []Tab{
	{Name: "Accounts", Key: '1'},
	{Name: "Forecast", Key: '2'},
	{Name: "Warnings", Key: '3'},
	{Name: "Settings", Key: '4'},
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var parts []string
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		parts = append(parts,
			dimStyle.Render("[")+keyStyle.Render(string(tab.Key))+dimStyle.Render("]")+
				inactiveStyle.Render(tab.Name))
	}

	bar := " " + strings.Join(parts, "  ")
	return lipgloss.NewStyle().Width(width).Render(bar)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
