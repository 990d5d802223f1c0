package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kcal/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Meals", Key: '1'},
	{Name: "Workouts", Key: '2'},
}

// TabWidth is the rendered width of tab i, padding included.
func TabWidth(i int) int {
	return lipgloss.Width(Tabs[i].Name) + 4 // "[1] " prefix
}

// RenderTabBar renders the tab bar with the given active index.
// Tabs are separated by a single space.
func RenderTabBar(activeIdx int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		prefix := keyStyle.Render("[" + string(tab.Key) + "] ")
		if i == activeIdx {
			parts = append(parts, prefix+activeStyle.Render(tab.Name))
		} else {
			parts = append(parts, prefix+inactiveStyle.Render(tab.Name))
		}
	}
	return strings.Join(parts, " ")
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabAtX returns the tab under column x of the tab bar, or -1.
func TabAtX(x int) int {
	pos := 0
	for i := range Tabs {
		w := TabWidth(i)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}
