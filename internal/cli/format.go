// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/kcal/internal/model"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatCalories formats a calorie count with separators and unit.
// e.g., 1850 -> "1,850 kcal"
func FormatCalories(n int) string {
	return FormatNumber(int64(n)) + " kcal"
}

// FormatPercentage formats a 0-100 percentage. A zero limit renders as "n/a".
func FormatPercentage(s model.Summary) string {
	if s.LimitZero {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", s.Percentage)
}

// ShortID trims an identifier for table display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ParseCalories parses a user-entered calorie amount.
func ParseCalories(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("calories are required")
	}
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, fmt.Errorf("calories must be a whole number, got %q", s)
	}
	return n, nil
}
