// Package tui provides the interactive Bubble Tea dashboard for kcal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/tracker"
	"github.com/theirongolddev/kcal/internal/tui/components"
	"github.com/theirongolddev/kcal/internal/tui/theme"
)

const (
	tabMeals = iota
	tabWorkouts
)

const (
	minTerminalWidth = 70
	maxContentWidth  = 120

	// Row of the tab bar in viewMain: title, four metric-card lines, progress, blank.
	tabBarY = 7
	// Lines used by everything except the list body.
	chromeHeight = 13
)

// Options configures NewApp.
type Options struct {
	// StorePath is the file or directory to watch for writes by other
	// kcal processes. Empty disables watching.
	StorePath string
	Logger    *zap.Logger
}

// listState tracks cursor and filter for one tab.
type listState struct {
	cursor      int
	offset      int
	searching   bool
	searchInput textinput.Model
	query       string
}

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	sum     model.Summary
	log     *zap.Logger

	watcher   *fsnotify.Watcher
	storePath string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	lists     [2]listState

	// Modal huh form; vals is shared with the form's bound fields.
	form    *huh.Form
	pending action
	vals    *formValues

	message string
	msgErr  bool
}

// NewApp creates the dashboard over an initialized tracker.
func NewApp(t *tracker.Tracker, opts Options) App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	a := App{
		tracker:   t,
		sum:       t.Summary(),
		log:       log,
		storePath: opts.StorePath,
	}

	if opts.StorePath != "" {
		w, err := newStoreWatcher(opts.StorePath)
		if err != nil {
			log.Warn("store watch disabled", zap.String("path", opts.StorePath), zap.Error(err))
		} else {
			a.watcher = w
		}
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.watcher != nil {
		cmds = append(cmds, watchStoreCmd(a.watcher, a.storePath))
	}
	return tea.Batch(cmds...)
}

// Close releases the store watcher.
func (a App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case storeChangedMsg:
		a.reload()
		return a, watchStoreCmd(a.watcher, a.storePath)

	case watchErrMsg:
		a.log.Warn("store watch error", zap.Error(msg.err))
		return a, watchStoreCmd(a.watcher, a.storePath)

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == tabBarY {
				if tab := components.TabAtX(msg.X - 1); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.form != nil {
			if key == "esc" {
				a.closeForm()
				a.setMessage("Cancelled", false)
				return a, nil
			}
			return a.updateForm(msg)
		}

		if a.lists[a.activeTab].searching {
			return a.updateSearch(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		return a.handleKey(key)
	}

	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return a, tea.Quit
	case "tab", "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "shift+tab", "left":
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.lists[a.activeTab].cursor = 0
	case "G", "end":
		a.lists[a.activeTab].cursor = max(len(a.visibleItems())-1, 0)
	case "a":
		return a.openForm(addActionFor(a.activeKind()))
	case "m":
		return a.openForm(actionAddMeal)
	case "w":
		return a.openForm(actionAddWorkout)
	case "l", "L":
		return a.openForm(actionSetLimit)
	case "d", "x", "delete":
		if _, ok := a.selected(); ok {
			return a.openForm(actionDelete)
		}
	case "r":
		return a.openForm(actionReset)
	case "/":
		ls := &a.lists[a.activeTab]
		ls.searching = true
		ls.searchInput = newSearchInput(ls.query)
		ls.searchInput.Focus()
		return a, textinput.Blink
	case "esc":
		a.lists[a.activeTab].query = ""
		a.clampCursor()
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) activeKind() model.Kind {
	if a.activeTab == tabWorkouts {
		return model.KindWorkout
	}
	return model.KindMeal
}

// visibleItems returns the active tab's items after the filter query.
func (a App) visibleItems() []model.Item {
	q := a.lists[a.activeTab].query
	var items []model.Item
	if a.activeTab == tabMeals {
		for _, m := range a.tracker.FilterMeals(q) {
			items = append(items, m.Item)
		}
		return items
	}
	for _, w := range a.tracker.FilterWorkouts(q) {
		items = append(items, w.Item)
	}
	return items
}

func (a App) selected() (model.Item, bool) {
	items := a.visibleItems()
	c := a.lists[a.activeTab].cursor
	if c < 0 || c >= len(items) {
		return model.Item{}, false
	}
	return items[c], true
}

func (a *App) moveCursor(delta int) {
	a.lists[a.activeTab].cursor += delta
	a.clampCursor()
}

// clampCursor keeps every tab's cursor inside its visible list.
func (a *App) clampCursor() {
	saved := a.activeTab
	for tab := range a.lists {
		a.activeTab = tab
		n := len(a.visibleItems())
		ls := &a.lists[tab]
		if ls.cursor >= n {
			ls.cursor = n - 1
		}
		if ls.cursor < 0 {
			ls.cursor = 0
		}
	}
	a.activeTab = saved
}

// reload re-reads the store after another process wrote to it.
func (a *App) reload() {
	if err := a.tracker.Initialize(); err != nil {
		a.log.Warn("reload failed", zap.Error(err))
		a.setMessage(err.Error(), true)
		return
	}
	a.sum = a.tracker.Summary()
	a.clampCursor()
	a.log.Debug("reloaded after store change")
}

func (a *App) setMessage(msg string, isErr bool) {
	a.message = msg
	a.msgErr = isErr
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  kcal needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()
	s := a.sum

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder

	// Title
	b.WriteString(" ")
	b.WriteString(titleStyle.Render("kcal"))
	b.WriteString(dimStyle.Render("  " + time.Now().Format("Mon Jan 2")))
	b.WriteString("\n")

	// Metric cards
	remainingColor := t.OK
	if s.OverLimit {
		remainingColor = t.Danger
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Limit", Value: cli.FormatNumber(int64(s.Limit))},
		{Label: "Net Total", Value: cli.FormatNumber(int64(s.Total))},
		{Label: "Consumed", Value: cli.FormatNumber(int64(s.Consumed)), Color: t.Consumed},
		{Label: "Burned", Value: cli.FormatNumber(int64(s.Burned)), Color: t.Burned},
		{Label: "Remaining", Value: cli.FormatNumber(int64(s.Remaining)), Color: remainingColor},
	}, cw))
	b.WriteString("\n")

	// Progress
	b.WriteString(" ")
	b.WriteString(components.LimitBar(s, cw-2))
	b.WriteString("\n\n")

	// Tabs
	b.WriteString(" ")
	b.WriteString(components.RenderTabBar(a.activeTab))
	b.WriteString("\n")

	// Body: form or list
	bodyHeight := max(a.height-chromeHeight, 3)
	if a.form != nil {
		b.WriteString(components.ContentCard(a.pending.title(), a.form.View(), cw, true))
	} else {
		b.WriteString(a.renderList(cw, bodyHeight))
	}
	b.WriteString("\n")

	// Search line
	ls := a.lists[a.activeTab]
	switch {
	case ls.searching:
		b.WriteString(" / " + ls.searchInput.View())
	case ls.query != "":
		b.WriteString(dimStyle.Render(fmt.Sprintf(" filter: %q  (esc to clear)", ls.query)))
	}
	b.WriteString("\n")

	b.WriteString(components.RenderStatusBar(cw, a.message, a.msgErr))

	out := b.String()
	if a.height > 0 {
		out = truncateHeight(out, a.height)
	}
	return out
}

func (a App) renderList(cw, height int) string {
	t := theme.Active
	kind := a.activeKind()
	items := a.visibleItems()
	ls := a.lists[a.activeTab]

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	calColor := t.Consumed
	if kind == model.KindWorkout {
		calColor = t.Burned
	}
	calStyle := lipgloss.NewStyle().Foreground(calColor).Bold(true)
	selStyle := lipgloss.NewStyle().Background(t.SurfaceHover)

	title := fmt.Sprintf("%ss (%d)", strings.ToUpper(kind.String()[:1])+kind.String()[1:], len(items))

	if len(items) == 0 {
		msg := fmt.Sprintf("You have no %ss for today", kind)
		if ls.query != "" {
			msg = fmt.Sprintf("No %ss found with %q", kind, ls.query)
		}
		return components.ContentCard(title, mutedStyle.Render(msg), cw, true)
	}

	inner := components.CardInnerWidth(cw)
	offset := scrollOffset(ls.cursor, ls.offset, height, len(items))
	end := min(offset+height, len(items))

	var rows []string
	for i := offset; i < end; i++ {
		it := items[i]
		cal := cli.FormatCalories(it.Calories)
		nameW := max(inner-lipgloss.Width(cal)-3, 1)
		name := truncStr(it.Name, nameW)

		pointer := "  "
		if i == ls.cursor {
			pointer = "> "
		}
		gap := max(inner-2-lipgloss.Width(name)-lipgloss.Width(cal), 1)
		row := pointer + nameStyle.Render(name) + strings.Repeat(" ", gap) + calStyle.Render(cal)
		if i == ls.cursor {
			row = selStyle.Render(row)
		}
		rows = append(rows, row)
	}

	return components.ContentCard(title, strings.Join(rows, "\n"), cw, true)
}

// scrollOffset keeps cursor inside a window of height rows.
func scrollOffset(cursor, offset, height, n int) int {
	if height <= 0 || n <= height {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	return min(max(offset, 0), n-height)
}

func (a App) viewHelp() string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	bindings := []struct{ key, desc string }{
		{"1 / 2, tab", "switch between meals and workouts"},
		{"j / k", "move selection"},
		{"a", "add to the current list"},
		{"m / w", "add a meal / a workout"},
		{"d", "delete the selected item"},
		{"l", "set the daily limit"},
		{"r", "reset meals and workouts"},
		{"/", "filter by name (esc clears)"},
		{"q", "quit"},
	}

	var b strings.Builder
	for _, kb := range bindings {
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-12s", kb.key)))
		b.WriteString(descStyle.Render(kb.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(descStyle.Render("press any key to close"))

	card := components.ContentCard("Keys", b.String(), min(a.contentWidth(), 60), true)
	return lipgloss.Place(a.width, max(a.height, lipgloss.Height(card)), lipgloss.Center, lipgloss.Center, card)
}

func newSearchInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "filter by name"
	ti.CharLimit = 64
	ti.Width = 30
	ti.SetValue(value)
	return ti
}

// updateSearch handles key events while the filter input is focused.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ls := &a.lists[a.activeTab]

	switch msg.String() {
	case "enter":
		ls.query = strings.TrimSpace(ls.searchInput.Value())
		ls.searching = false
		ls.cursor = 0
		ls.offset = 0
		return a, nil
	case "esc":
		ls.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	ls.searchInput, cmd = ls.searchInput.Update(msg)
	return a, cmd
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
