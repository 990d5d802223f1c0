package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsExactly(t *testing.T) {
	for _, total := range []int{80, 97, 120} {
		for n := 1; n <= 5; n++ {
			sum := 0
			for _, w := range LayoutRow(total, n) {
				sum += w
			}
			if sum != total {
				t.Errorf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Limit", Value: "2,000"},
		{Label: "Consumed", Value: "300"},
		{Label: "Burned", Value: "400"},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestBarFraction(t *testing.T) {
	tests := []struct {
		s    model.Summary
		want float64
	}{
		{model.Summary{Percentage: 15}, 0.15},
		{model.Summary{Percentage: -5}, 0},
		{model.Summary{Percentage: 100}, 1},
		{model.Summary{LimitZero: true}, 0},
	}
	for _, tt := range tests {
		if got := BarFraction(tt.s); got != tt.want {
			t.Errorf("BarFraction(%+v) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestLimitBarLabel(t *testing.T) {
	out := LimitBar(model.Summary{Percentage: -5}, 40)
	if !strings.Contains(out, "-5%") {
		t.Errorf("label missing from %q", out)
	}
	out = LimitBar(model.Summary{LimitZero: true}, 40)
	if !strings.Contains(out, "n/a") {
		t.Errorf("zero-limit label missing from %q", out)
	}
}

func TestTabAtX(t *testing.T) {
	pos := 0
	for i := range Tabs {
		w := TabWidth(i)
		if got := TabAtX(pos + w/2); got != i {
			t.Errorf("x=%d -> tab %d, want %d", pos+w/2, got, i)
		}
		pos += w + 1
	}
	if got := TabAtX(pos + 50); got != -1 {
		t.Errorf("x past the bar -> %d, want -1", got)
	}
}

func TestTabBarWidthMatchesTabWidths(t *testing.T) {
	want := 0
	for i := range Tabs {
		want += TabWidth(i)
	}
	want += len(Tabs) - 1
	if got := lipgloss.Width(RenderTabBar(0)); got != want {
		t.Errorf("tab bar width = %d, want %d", got, want)
	}
}
