// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"budgetdeck/internal/schema"
)

// FormatAmount formats a raw cell value as a dollar amount with comma
// separators, e.g. "1234.5" -> "$1,234.50". Values that do not parse
// as a number are returned unchanged so free-form cells still render.
func FormatAmount(raw string) string {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "$")
	if s == "" {
		return raw
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return raw
	}
	if d.IsNegative() {
		return "-$" + groupThousands(d.Neg().StringFixed(2))
	}
	return "$" + groupThousands(d.StringFixed(2))
}

// FormatBalance is FormatAmount for float values that came off the
// forecast wire rather than a table cell.
func FormatBalance(v float64) string {
	return FormatAmount(decimal.NewFromFloat(v).StringFixed(2))
}

// FormatCount renders a transaction count, dropping a trailing ".0"
// the server sometimes sends.
func FormatCount(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// groupThousands inserts comma separators into the integer part of a
// fixed-point decimal string.
func groupThousands(s string) string {
	intPart, frac, found := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	remainder := len(intPart) % 3
	if remainder > 0 {
		b.WriteString(intPart[:remainder])
	}
	for i := remainder; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if found {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// NetWorth sums the Balance cells across accounts with exact decimal
// arithmetic. Cells that do not parse as numbers are skipped.
func NetWorth(records []schema.Record) string {
	total := decimal.Zero
	for _, rec := range records {
		s := strings.TrimPrefix(strings.TrimSpace(rec["Balance"]), "$")
		d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
		if err != nil {
			continue
		}
		total = total.Add(d)
	}
	return FormatAmount(total.String())
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a balance change with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatBalance(delta)
	}
	return FormatBalance(delta)
}
