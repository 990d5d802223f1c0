package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/tui/theme"
)

// BarFraction maps a summary's percentage onto the drawable 0-1 range.
// The core value is unclamped below zero; the bar is not.
func BarFraction(s model.Summary) float64 {
	if s.LimitZero {
		return 0
	}
	return min(max(s.Percentage/100, 0), 1)
}

// LimitBar renders the labelled percentage-of-limit bar.
func LimitBar(s model.Summary, width int) string {
	t := theme.Active
	color := t.ForPercentage(s.Percentage, s.OverLimit)

	label := "n/a"
	if !s.LimitZero {
		label = fmt.Sprintf("%.0f%%", s.Percentage)
	}

	barW := max(width-lipgloss.Width(label)-1, 4)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	return bar.ViewAs(BarFraction(s)) + " " + pctStyle.Render(label)
}
