package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"budgetdeck/internal/model"
	"budgetdeck/internal/schema"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	negativeStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table is a bordered text table for CLI output. Columns listed in
// RightAlign are right-aligned; everything else is left-aligned.
type Table struct {
	Title      string
	Headers    []string
	Rows       [][]string
	RightAlign map[int]bool
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// padCell pads s to width display cells, measured with lipgloss so
// non-ASCII account names stay aligned.
func padCell(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap < 0 {
		gap = 0
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

func writeRule(b *strings.Builder, widths []int, left, mid, right string) {
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
}

// RenderTable renders a bordered table with headers and rows. Cells
// that look like negative amounts are rendered in red.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	writeRule(&b, widths, "╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + padCell(h, widths[i], false) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		writeRule(&b, widths, "├", "┼", "┤")
	}

	for _, row := range t.Rows {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			padded := " " + padCell(cell, widths[i], t.RightAlign[i]) + " "
			style := valueStyle
			if strings.HasPrefix(cell, "-$") {
				style = negativeStyle
			}
			b.WriteString(style.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	writeRule(&b, widths, "╰", "┴", "╯")
	return b.String()
}

// amountColumns are the account columns rendered as dollar amounts.
var amountColumns = map[string]bool{
	"Balance":     true,
	"CreditLimit": true,
}

// RenderAccounts renders account records as a bordered table in the
// fixed column order.
func RenderAccounts(records []schema.Record, cols schema.Columns) string {
	t := Table{
		Headers:    cols,
		RightAlign: map[int]bool{},
	}
	for i, col := range cols {
		if amountColumns[col] {
			t.RightAlign[i] = true
		}
	}
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, col := range cols {
			v := rec[col]
			if amountColumns[col] && v != "" {
				v = FormatAmount(v)
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return RenderTable(t)
}

// RenderWarnings renders triaged warning groups, one block per
// account. Accounts with no issues get a single all-clear line.
func RenderWarnings(groups []model.WarningGroup) string {
	var b strings.Builder
	for _, g := range groups {
		b.WriteString(headerStyle.Render(g.Account))
		b.WriteString("\n")
		if !g.HasIssues {
			b.WriteString(mutedStyle.Render("  no warnings"))
			b.WriteString("\n")
			continue
		}
		for _, ev := range g.Retained {
			b.WriteString(warnStyle.Render(fmt.Sprintf("  %s  %s", ev.Date, ev.Issue)))
			if ev.Notes != "" {
				b.WriteString(mutedStyle.Render("  (" + ev.Notes + ")"))
			}
			b.WriteString("\n")
		}
		if hidden := g.TotalSeen - len(g.Retained); hidden > 0 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  … and %d more", hidden)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderTotalsSparkline renders the daily-total series as a compact
// sparkline with its endpoints labelled.
func RenderTotalsSparkline(totals []model.TotalsPoint) string {
	if len(totals) == 0 {
		return ""
	}
	values := make([]float64, len(totals))
	for i, p := range totals {
		values[i] = p.Total
	}
	spark := Sparkline(values)
	first := totals[0]
	last := totals[len(totals)-1]
	return fmt.Sprintf("%s  %s %s → %s %s",
		spark,
		mutedStyle.Render(first.Date), FormatBalance(first.Total),
		mutedStyle.Render(last.Date), FormatBalance(last.Total))
}

// RenderForecast renders the aggregated view as one table row per day
// with a balance column per account.
func RenderForecast(view *model.ForecastView) string {
	headers := append([]string{"Date"}, view.Accounts...)
	headers = append(headers, "Total")

	t := Table{Headers: headers, RightAlign: map[int]bool{}}
	for i := 1; i < len(headers); i++ {
		t.RightAlign[i] = true
	}

	for i, p := range view.Totals {
		row := make([]string, 0, len(headers))
		row = append(row, p.Date)
		for _, acct := range view.Accounts {
			row = append(row, FormatBalance(view.Series[acct].Points[i].Balance))
		}
		row = append(row, FormatBalance(p.Total))
		t.Rows = append(t.Rows, row)
	}
	return RenderTable(t)
}

// Sparkline generates a unicode block sparkline from a series of
// values, scaled between the series min and max.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}
	return b.String()
}
