package components

import (
	"strings"
	"testing"
)

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('1'); got != 0 {
		t.Errorf("TabIdxByKey('1') = %d", got)
	}
	if got := TabIdxByKey('4'); got != 3 {
		t.Errorf("TabIdxByKey('4') = %d", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestSparklineBounds(t *testing.T) {
	if got := Sparkline(nil, "#ffffff"); got != "" {
		t.Errorf("Sparkline(nil) = %q", got)
	}
	// Flat and negative series must not panic or divide by zero.
	_ = Sparkline([]float64{-5, -5, -5}, "#ffffff")
	_ = Sparkline([]float64{-100, 0, 100}, "#ffffff")
}

func TestCountBarsNegativeValues(t *testing.T) {
	// The forecast decoder keeps any numeric the service sends, so a
	// negative transaction count must render as an empty bar, not panic.
	got := CountBars([]string{"Visa", "Checking"}, []float64{-3, 4}, 40, "#ffffff")
	if !strings.Contains(got, "-3") {
		t.Errorf("CountBars missing negative value label: %q", got)
	}
	if !strings.Contains(got, "█") {
		t.Errorf("CountBars missing bar for positive value: %q", got)
	}
	// All-negative series: maxVal floors to 1, every bar clamps empty.
	_ = CountBars([]string{"a"}, []float64{-1}, 40, "#ffffff")
}

func TestLayoutRowSumsExactly(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		widths := LayoutRow(100, n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != 100 {
			t.Errorf("LayoutRow(100, %d) sums to %d", n, sum)
		}
	}
}
