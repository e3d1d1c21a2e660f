package tui

import (
	"fmt"
	"strings"

	"budgetdeck/internal/tui/components"
	"budgetdeck/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderWarningsTab renders one card per account with its retained
// warnings. Accounts without issues still get a card so their
// all-clear is visible.
func (a App) renderWarningsTab(cw int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	if len(a.warnings) == 0 {
		return "\n  " + dimStyle.Render("no accounts in forecast")
	}

	warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	okStyle := lipgloss.NewStyle().Foreground(t.Green)

	cardW := cw - 4
	if cardW > 100 {
		cardW = 100
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, g := range a.warnings {
		var body strings.Builder
		if !g.HasIssues {
			body.WriteString(okStyle.Render("✓ no warnings"))
		} else {
			for i, ev := range g.Retained {
				body.WriteString(dateStyle.Render(ev.Date))
				body.WriteString("  ")
				body.WriteString(warnStyle.Render(ev.Issue))
				if ev.Notes != "" {
					body.WriteString("\n   ")
					body.WriteString(noteStyle.Render(ev.Notes))
				}
				if i < len(g.Retained)-1 {
					body.WriteString("\n")
				}
			}
			if hidden := g.TotalSeen - len(g.Retained); hidden > 0 {
				body.WriteString("\n")
				body.WriteString(noteStyle.Render(fmt.Sprintf("… and %d more", hidden)))
			}
		}

		title := g.Account
		if g.HasIssues {
			title = fmt.Sprintf("%s (%d)", g.Account, g.TotalSeen)
		}
		b.WriteString(indentLines(components.ContentCard(title, body.String(), cardW), "  "))
		b.WriteString("\n")
	}

	return b.String()
}
