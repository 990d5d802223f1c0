package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kcal/internal/model"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Name", "Calories"},
		Rows:    [][]string{{"Eggs", "300"}, {"---"}, {"Pasta Bake", "1,200"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top, header, header rule, Eggs, separator, Pasta Bake, bottom
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[4], "┼") {
		t.Errorf("line 4 = %q, want the --- separator rule", lines[4])
	}
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("empty table rendered %q", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		s          model.Summary
		wantFilled int
		wantLabel  string
	}{
		{"quarter", model.Summary{Percentage: 25}, 5, "25%"},
		{"negative draws empty", model.Summary{Percentage: -5}, 0, "-5%"},
		{"capped", model.Summary{Percentage: 100, OverLimit: true}, 20, "100%"},
		{"zero limit", model.Summary{LimitZero: true}, 0, "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderProgressBar(tt.s, 20)
			if got := strings.Count(out, "█"); got != tt.wantFilled {
				t.Errorf("filled = %d, want %d", got, tt.wantFilled)
			}
			if !strings.HasSuffix(out, tt.wantLabel) {
				t.Errorf("label: %q does not end with %q", out, tt.wantLabel)
			}
		})
	}
}

func TestRenderItems_EmptyMessage(t *testing.T) {
	out := RenderItems(model.KindWorkout, nil)
	if !strings.Contains(out, "You have no workouts for today") {
		t.Errorf("empty list output = %q", out)
	}
}

func TestRenderItems_Total(t *testing.T) {
	out := RenderItems(model.KindMeal, []model.Item{
		{ID: "aaaaaaaaaaaa", Name: "Eggs", Calories: 300},
		{ID: "b", Name: "Toast", Calories: 150},
	})
	for _, want := range []string{"aaaaaaaa", "Eggs", "Toast", "450 kcal", "Meal"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(model.Summary{Limit: 2000, Total: 300, Consumed: 300, Remaining: 1700, Percentage: 15})
	for _, want := range []string{"2,000 kcal", "1,700 kcal", "15%"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
