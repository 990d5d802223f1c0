package cli

import (
	"testing"

	"github.com/theirongolddev/kcal/internal/model"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-2100, "-2,100"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCalories(t *testing.T) {
	if got := FormatCalories(1850); got != "1,850 kcal" {
		t.Errorf("FormatCalories(1850) = %q", got)
	}
	if got := FormatCalories(-100); got != "-100 kcal" {
		t.Errorf("FormatCalories(-100) = %q", got)
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := FormatPercentage(model.Summary{Percentage: 15}); got != "15%" {
		t.Errorf("15 -> %q", got)
	}
	if got := FormatPercentage(model.Summary{Percentage: -5}); got != "-5%" {
		t.Errorf("-5 -> %q", got)
	}
	if got := FormatPercentage(model.Summary{LimitZero: true}); got != "n/a" {
		t.Errorf("zero limit -> %q", got)
	}
}

func TestParseCalories(t *testing.T) {
	for in, want := range map[string]int{"300": 300, " 1,200 ": 1200, "-50": -50} {
		got, err := ParseCalories(in)
		if err != nil {
			t.Fatalf("ParseCalories(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseCalories(%q) = %d, want %d", in, got, want)
		}
	}
	for _, bad := range []string{"", "   ", "12.5", "lots"} {
		if _, err := ParseCalories(bad); err == nil {
			t.Errorf("ParseCalories(%q) succeeded, want error", bad)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID short = %q", got)
	}
}
