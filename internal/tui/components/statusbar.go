package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kcal/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with a message on the right.
func RenderStatusBar(width int, message string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	msgStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if isErr {
		msgStyle = msgStyle.Foreground(t.Danger)
	}

	left := " [a]dd [d]elete [l]imit [r]eset [/]filter [?]help [q]uit"
	right := ""
	if message != "" {
		right = msgStyle.Render(message + " ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + lipgloss.NewStyle().Width(padding).Render("") + right)
}
