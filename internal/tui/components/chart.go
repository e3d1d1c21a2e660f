package components

import (
	"fmt"
	"strings"
	"time"

	"budgetdeck/internal/tui/theme"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline scaled between the series min
// and max, so negative balances still show their shape.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

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

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4)
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BalanceChart renders a braille line chart of one balance series over
// time. Dates and values are parallel and chronological.
func BalanceChart(dates []time.Time, values []float64, width, height int, color lipgloss.Color) string {
	if len(dates) == 0 || len(dates) != len(values) {
		return ""
	}
	if width < 20 || height < 4 {
		return Sparkline(values, color)
	}
	t := theme.Active

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.08

	chart := tslc.New(width, height)
	chart.SetXStep(1)
	chart.SetYStep(1)
	chart.SetStyle(lipgloss.NewStyle().Foreground(color))
	chart.AxisStyle = lipgloss.NewStyle().Foreground(t.Border)
	chart.LabelStyle = lipgloss.NewStyle().Foreground(t.TextMuted)
	chart.SetTimeRange(dates[0], dates[len(dates)-1])
	chart.SetViewTimeRange(dates[0], dates[len(dates)-1])
	chart.SetYRange(lo-pad, hi+pad)
	chart.SetViewYRange(lo-pad, hi+pad)
	chart.Model.XLabelFormatter = dateLabelFormatter()

	for i, d := range dates {
		chart.Push(tslc.TimePoint{Time: d, Value: values[i]})
	}

	chart.DrawBraille()
	return chart.View()
}

// dateLabelFormatter renders X-axis labels as "Jan 2" with a bare day
// number once the month has been shown.
func dateLabelFormatter() func(int, float64) string {
	prevMonth := time.Month(0)
	return func(_ int, v float64) string {
		d := time.Unix(int64(v), 0)
		m := d.Month()
		label := fmt.Sprintf("%d", d.Day())
		if m != prevMonth {
			label = d.Format("Jan 2")
		}
		prevMonth = m
		return label
	}
}

// CountBars renders one labelled horizontal bar per entry, scaled to
// the largest value.
func CountBars(labels []string, values []float64, width int, color lipgloss.Color) string {
	if len(labels) == 0 || len(labels) != len(values) {
		return ""
	}
	t := theme.Active

	labelW := 0
	maxVal := 0.0
	for i, l := range labels {
		if w := lipgloss.Width(l); w > labelW {
			labelW = w
		}
		if values[i] > maxVal {
			maxVal = values[i]
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	barW := width - labelW - 8
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(color)
	valStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	for i, l := range labels {
		n := int(values[i] / maxVal * float64(barW))
		if n < 1 && values[i] > 0 {
			n = 1
		}
		if n < 0 {
			n = 0
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s ", labelW, l)))
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		b.WriteString(valStyle.Render(fmt.Sprintf(" %g", values[i])))
		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
