package tui

import (
	"strings"
	"time"

	"budgetdeck/internal/cli"
	"budgetdeck/internal/tui/components"
	"budgetdeck/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// forecastState tracks which series is charted. Index 0 is the daily
// total; 1..n map to view.Accounts.
type forecastState struct {
	selected int
}

func (a App) updateForecastKeys(key string) (tea.Model, bool) {
	if a.view == nil {
		return a, false
	}
	switch key {
	case "j", "down", "l":
		if a.fc.selected < len(a.view.Accounts) {
			a.fc.selected++
		} else {
			a.fc.selected = 0
		}
		return a, true
	case "k", "up", "h":
		if a.fc.selected > 0 {
			a.fc.selected--
		} else {
			a.fc.selected = len(a.view.Accounts)
		}
		return a, true
	}
	return a, false
}

// seriesForSelection returns the charted series name, dates, balances,
// and per-day transaction counts (nil for the total series).
func (a App) seriesForSelection() (string, []time.Time, []float64, []float64) {
	v := a.view

	if a.fc.selected == 0 || a.fc.selected > len(v.Accounts) {
		dates := make([]time.Time, 0, len(v.Totals))
		vals := make([]float64, 0, len(v.Totals))
		for _, p := range v.Totals {
			dates = append(dates, parseChartDate(p.Date))
			vals = append(vals, p.Total)
		}
		return "Total", dates, vals, nil
	}

	name := v.Accounts[a.fc.selected-1]
	series := v.Series[name]
	dates := make([]time.Time, 0, len(series.Points))
	vals := make([]float64, 0, len(series.Points))
	txs := make([]float64, 0, len(series.Points))
	for _, p := range series.Points {
		dates = append(dates, parseChartDate(p.Date))
		vals = append(vals, p.Balance)
		txs = append(txs, p.Transactions)
	}
	return name, dates, vals, txs
}

// parseChartDate converts a wire date to a chart timestamp. Dates that
// fail to parse collapse to the zero time and chart at the origin.
func parseChartDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", "01/02/2006", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (a App) renderForecastTab(cw, contentH int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	if a.view == nil || len(a.view.Totals) == 0 {
		return "\n  " + dimStyle.Render("no forecast data")
	}

	name, dates, vals, txs := a.seriesForSelection()

	var b strings.Builder
	b.WriteString("\n")

	// Metric cards: current selection endpoints
	first, last := vals[0], vals[len(vals)-1]
	cards := []struct{ Label, Value, Detail string }{
		{Label: name + " start", Value: cli.FormatBalance(first)},
		{Label: name + " end", Value: cli.FormatBalance(last), Detail: cli.FormatDelta(last, first)},
		{Label: "Days", Value: cli.FormatCount(float64(len(vals)))},
	}
	b.WriteString(components.MetricCardRow(cards, cw-4))
	b.WriteString("\n\n")

	chartH := contentH - 12
	if chartH < 6 {
		chartH = 6
	}
	color := t.Accent
	if a.fc.selected > 0 {
		color = seriesColor(a.fc.selected - 1)
	}
	b.WriteString(components.BalanceChart(dates, vals, cw-6, chartH, color))
	b.WriteString("\n")

	// Selector line
	var names []string
	options := append([]string{"Total"}, a.view.Accounts...)
	for i, n := range options {
		if i == a.fc.selected {
			names = append(names, lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(n))
		} else {
			names = append(names, mutedStyle.Render(n))
		}
	}
	b.WriteString("  ")
	b.WriteString(strings.Join(names, dimStyle.Render(" · ")))
	b.WriteString(dimStyle.Render("   [j/k] switch series"))
	b.WriteString("\n")

	if txs != nil {
		total := 0.0
		for _, v := range txs {
			total += v
		}
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render("transactions: " + cli.FormatCount(total) + "  "))
		b.WriteString(components.Sparkline(txs, t.Blue))
		b.WriteString("\n")
	} else if len(a.view.Accounts) > 0 {
		// Total selected: per-account transaction volume over the window.
		labels := a.view.Accounts
		counts := make([]float64, len(labels))
		for i, acct := range labels {
			for _, p := range a.view.Series[acct].Points {
				counts[i] += p.Transactions
			}
		}
		b.WriteString("\n")
		b.WriteString(indentLines(components.CountBars(labels, counts, cw-8, t.Blue), "  "))
		b.WriteString("\n")
	}

	return b.String()
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// seriesColor assigns a stable per-account chart color.
func seriesColor(idx int) lipgloss.Color {
	t := theme.Active
	palette := []lipgloss.Color{t.Blue, t.Green, t.Orange, t.Yellow, t.Red}
	return palette[idx%len(palette)]
}
