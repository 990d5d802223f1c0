package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/store"
	"github.com/theirongolddev/kcal/internal/tracker"
	"github.com/theirongolddev/kcal/internal/tui/components"
)

func newTestApp(t *testing.T, s store.Store) App {
	t.Helper()
	tr := tracker.New(s)
	if err := tr.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return send(t, NewApp(tr, Options{}), tea.WindowSizeMsg{Width: 100, Height: 40})
}

func send(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return app
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seed(t *testing.T, s store.Store, meals ...model.Meal) {
	t.Helper()
	tr := tracker.New(s)
	if err := tr.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	for _, m := range meals {
		if _, err := tr.AddMeal(m); err != nil {
			t.Fatalf("AddMeal: %v", err)
		}
	}
}

func TestViewShowsEmptyLists(t *testing.T) {
	a := newTestApp(t, store.NewMemory())

	if v := a.View(); !strings.Contains(v, "You have no meals for today") {
		t.Errorf("meals view missing empty message:\n%s", v)
	}

	a = send(t, a, keys("2"))
	if a.activeTab != tabWorkouts {
		t.Fatalf("activeTab = %d, want %d", a.activeTab, tabWorkouts)
	}
	if v := a.View(); !strings.Contains(v, "You have no workouts for today") {
		t.Errorf("workouts view missing empty message:\n%s", v)
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t, store.NewMemory())
	a = send(t, a, tea.WindowSizeMsg{Width: 50, Height: 20})
	if v := a.View(); !strings.Contains(v, "Terminal too narrow") {
		t.Errorf("narrow view = %q", v)
	}
}

func TestTabBarRowMatchesMouseRow(t *testing.T) {
	a := newTestApp(t, store.NewMemory())

	lines := strings.Split(a.View(), "\n")
	if len(lines) <= tabBarY {
		t.Fatalf("view has %d lines, want more than %d", len(lines), tabBarY)
	}
	if !strings.Contains(lines[tabBarY], "Meals") || !strings.Contains(lines[tabBarY], "Workouts") {
		t.Errorf("line %d = %q, want the tab bar", tabBarY, lines[tabBarY])
	}

	// One leading space, then tab 0, then a separator space.
	x := 1 + components.TabWidth(0) + 1 + 2
	a = send(t, a, tea.MouseMsg{X: x, Y: tabBarY, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if a.activeTab != tabWorkouts {
		t.Errorf("after click at x=%d activeTab = %d, want %d", x, a.activeTab, tabWorkouts)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	s := store.NewMemory()
	seed(t, s, model.NewMeal("Oats", 300), model.NewMeal("Salad", 250))
	a := newTestApp(t, s)

	for range 5 {
		a = send(t, a, keys("j"))
	}
	if got := a.lists[tabMeals].cursor; got != 1 {
		t.Errorf("cursor after 5x j = %d, want 1", got)
	}
	for range 5 {
		a = send(t, a, keys("k"))
	}
	if got := a.lists[tabMeals].cursor; got != 0 {
		t.Errorf("cursor after 5x k = %d, want 0", got)
	}
}

func TestSearchFiltersActiveList(t *testing.T) {
	s := store.NewMemory()
	seed(t, s, model.NewMeal("Oats", 300), model.NewMeal("Chicken Salad", 450))
	a := newTestApp(t, s)

	a = send(t, a, keys("/"))
	if !a.lists[tabMeals].searching {
		t.Fatal("expected search mode after /")
	}
	a = send(t, a, keys("SAL"))
	a = send(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	items := a.visibleItems()
	if len(items) != 1 || items[0].Name != "Chicken Salad" {
		t.Errorf("visibleItems = %+v, want only Chicken Salad", items)
	}

	a.lists[tabMeals].query = "pizza"
	if v := a.View(); !strings.Contains(v, `No meals found with "pizza"`) {
		t.Errorf("view missing no-match message:\n%s", v)
	}

	a = send(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if got := len(a.visibleItems()); got != 2 {
		t.Errorf("after esc visibleItems = %d, want 2", got)
	}
}

func TestStoreChangeReloads(t *testing.T) {
	s := store.NewMemory()
	a := newTestApp(t, s)

	// Another process adds a meal.
	other := tracker.New(s)
	if err := other.Initialize(); err != nil {
		t.Fatal(err)
	}
	if _, err := other.AddMeal(model.NewMeal("Toast", 180)); err != nil {
		t.Fatal(err)
	}

	a = send(t, a, storeChangedMsg{})
	if a.sum.Total != 180 || a.sum.MealCount != 1 {
		t.Errorf("after reload total = %d meals = %d, want 180 and 1", a.sum.Total, a.sum.MealCount)
	}
}

func openFormFor(t *testing.T, a App, act action) App {
	t.Helper()
	m, _ := a.openForm(act)
	app := m.(App)
	if app.form == nil {
		t.Fatalf("openForm(%v) left no form open", act)
	}
	return app
}

func TestApplyAddAndLimit(t *testing.T) {
	a := newTestApp(t, store.NewMemory())

	a = openFormFor(t, a, actionAddMeal)
	a.vals.name = "Pasta"
	a.vals.calories = "800"
	a.applyForm()
	a.closeForm()

	a = openFormFor(t, a, actionAddWorkout)
	a.vals.name = "Run"
	a.vals.calories = "300"
	a.applyForm()
	a.closeForm()

	if a.sum.Total != 500 || a.sum.Consumed != 800 || a.sum.Burned != 300 {
		t.Errorf("summary = %+v, want total 500 consumed 800 burned 300", a.sum)
	}

	a = openFormFor(t, a, actionSetLimit)
	if a.vals.limit != "2000" {
		t.Errorf("limit field prefilled with %q, want 2000", a.vals.limit)
	}
	a.vals.limit = "1,000"
	a.applyForm()
	if a.sum.Limit != 1000 || a.sum.Percentage != 50 {
		t.Errorf("limit = %d pct = %v, want 1000 and 50", a.sum.Limit, a.sum.Percentage)
	}
	if a.msgErr {
		t.Errorf("unexpected error message %q", a.message)
	}
}

func TestApplyDeleteNeedsConfirm(t *testing.T) {
	s := store.NewMemory()
	seed(t, s, model.NewMeal("Oats", 300))
	a := newTestApp(t, s)

	a = openFormFor(t, a, actionDelete)
	a.applyForm()
	a.closeForm()
	if a.tracker.TotalCalories() != 300 || len(a.tracker.Meals()) != 1 {
		t.Fatalf("declined delete changed state: meals = %d", len(a.tracker.Meals()))
	}

	a = openFormFor(t, a, actionDelete)
	a.vals.confirm = true
	a.applyForm()
	if got := len(a.tracker.Meals()); got != 0 {
		t.Errorf("meals after confirmed delete = %d, want 0", got)
	}
}

func TestDeleteWithEmptyListOpensNothing(t *testing.T) {
	a := newTestApp(t, store.NewMemory())
	a = send(t, a, keys("d"))
	if a.form != nil {
		t.Error("delete on an empty list opened a form")
	}
}

func TestApplyResetKeepsLimit(t *testing.T) {
	s := store.NewMemory()
	seed(t, s, model.NewMeal("Oats", 300))
	if err := s.SetCalorieLimit(1800); err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, s)
	a.lists[tabMeals].query = "oa"

	a = openFormFor(t, a, actionReset)
	a.vals.confirm = true
	a.applyForm()

	if a.sum.MealCount != 0 || a.sum.Total != 0 || a.sum.Limit != 1800 {
		t.Errorf("after reset summary = %+v", a.sum)
	}
	if a.lists[tabMeals].query != "" {
		t.Errorf("query after reset = %q, want empty", a.lists[tabMeals].query)
	}
}

func TestEscClosesForm(t *testing.T) {
	a := newTestApp(t, store.NewMemory())
	a = send(t, a, keys("m"))
	if a.form == nil || a.pending != actionAddMeal {
		t.Fatalf("m did not open the meal form (pending = %v)", a.pending)
	}
	a = send(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.form != nil {
		t.Error("esc left the form open")
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		in      string
		wantErr bool
	}{
		{"name ok", validateName, "Soup", false},
		{"name blank", validateName, "   ", true},
		{"calories ok", validateCalories, "450", false},
		{"calories negative", validateCalories, "-50", false},
		{"calories empty", validateCalories, "", true},
		{"calories text", validateCalories, "lots", true},
		{"limit empty", validateLimit, "", true},
		{"limit ok", validateLimit, "2,500", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("%s(%q) error = %v, wantErr %v", tt.name, tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestRelevantEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kcal.db")
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: path + "-wal", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: path + "-wal", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/elsewhere/notes.txt", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := relevantEvent(tt.ev, path); got != tt.want {
			t.Errorf("relevantEvent(%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		cursor, offset, height, n int
		want                      int
	}{
		{0, 0, 5, 3, 0},
		{7, 0, 5, 10, 3},
		{2, 4, 5, 10, 2},
		{9, 9, 5, 10, 5},
	}
	for _, tt := range tests {
		if got := scrollOffset(tt.cursor, tt.offset, tt.height, tt.n); got != tt.want {
			t.Errorf("scrollOffset(%d, %d, %d, %d) = %d, want %d",
				tt.cursor, tt.offset, tt.height, tt.n, got, tt.want)
		}
	}
}
