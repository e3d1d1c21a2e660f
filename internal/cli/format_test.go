package cli

import (
	"strings"
	"testing"

	"budgetdeck/internal/budgetapi"
	"budgetdeck/internal/model"
	"budgetdeck/internal/schema"

	"github.com/charmbracelet/lipgloss"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100", "$100.00"},
		{"1234.5", "$1,234.50"},
		{"-250.5", "-$250.50"},
		{"$1,234,567", "$1,234,567.00"},
		{"0", "$0.00"},
		{"pending", "pending"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBalance(t *testing.T) {
	if got := FormatBalance(1200.5); got != "$1,200.50" {
		t.Errorf("FormatBalance(1200.5) = %q", got)
	}
	if got := FormatBalance(-3); got != "-$3.00" {
		t.Errorf("FormatBalance(-3) = %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(3); got != "3" {
		t.Errorf("FormatCount(3) = %q", got)
	}
	if got := FormatCount(2.5); got != "2.5" {
		t.Errorf("FormatCount(2.5) = %q", got)
	}
}

func TestNetWorth(t *testing.T) {
	records := []schema.Record{
		{"AccountName": "Checking", "Balance": "1000.25"},
		{"AccountName": "Visa", "Balance": "-250.25"},
		{"AccountName": "Pending", "Balance": "unknown"},
	}
	if got := NetWorth(records); got != "$750.00" {
		t.Errorf("NetWorth = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(150, 100); got != "+$50.00" {
		t.Errorf("FormatDelta = %q", got)
	}
	if got := FormatDelta(100, 150); got != "-$50.00" {
		t.Errorf("FormatDelta = %q", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Errorf("Sparkline(nil) = %q", got)
	}

	got := Sparkline([]float64{0, 50, 100})
	runes := []rune(got)
	if len(runes) != 3 {
		t.Fatalf("Sparkline length = %d", len(runes))
	}
	if runes[0] != '▁' || runes[2] != '█' {
		t.Errorf("Sparkline = %q, want min and max endpoints", got)
	}

	// Flat series must not divide by zero.
	if got := Sparkline([]float64{5, 5, 5}); len([]rune(got)) != 3 {
		t.Errorf("flat Sparkline = %q", got)
	}
}

func TestRenderTableNonASCIIAlignment(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Name", "Balance"},
		Rows: [][]string{
			{"Café Séjourné", "$100.00"},
			{"Checking", "$2,500.00"},
		},
		RightAlign: map[int]bool{1: true},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d: %q", i, w, want, line)
		}
	}
}

func TestRenderWarningsHiddenCount(t *testing.T) {
	groups := []model.WarningGroup{
		{
			Account: "Checking",
			Retained: []budgetapi.WarningEvent{
				{Account: "Checking", Issue: "low balance", Date: "2026-09-01"},
			},
			TotalSeen: 5,
			HasIssues: true,
		},
		{Account: "Savings"},
	}

	out := RenderWarnings(groups)
	if !strings.Contains(out, "low balance") {
		t.Errorf("output missing retained warning: %q", out)
	}
	if !strings.Contains(out, "and 4 more") {
		t.Errorf("output missing hidden count: %q", out)
	}
	if !strings.Contains(out, "no warnings") {
		t.Errorf("output missing all-clear line: %q", out)
	}
}
