// Package tracker owns the current day's calorie state and keeps it in step
// with the durable store.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/store"
)

var (
	// ErrNotInitialized is returned by mutations made before Initialize.
	ErrNotInitialized = errors.New("tracker: not initialized")
	// ErrDivisionByZero is returned by Percentage when the limit is zero.
	ErrDivisionByZero = errors.New("tracker: calorie limit is zero")
)

// Tracker holds the limit, the running total, and both item lists.
//
// Total is maintained incrementally on the stored value; every mutation keeps
// total == sum(meal calories) - sum(workout calories) on disk, and afterwards
// the Tracker holds exactly what the store holds.
// A Tracker is not safe for concurrent use.
type Tracker struct {
	store store.Store
	log   *zap.Logger

	initialized bool
	limit       int
	total       int
	meals       []model.Meal
	workouts    []model.Workout
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// New returns an uninitialized Tracker backed by s.
func New(s store.Store, opts ...Option) *Tracker {
	t := &Tracker{store: s, log: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// state is one consistent read of every durable key.
type state struct {
	limit    int
	total    int
	meals    []model.Meal
	workouts []model.Workout
}

func loadState(s store.Store) (state, error) {
	var st state
	var err error
	if st.limit, err = s.CalorieLimit(); err != nil {
		return state{}, fmt.Errorf("loading calorie limit: %w", err)
	}
	if st.total, err = s.TotalCalories(); err != nil {
		return state{}, fmt.Errorf("loading total calories: %w", err)
	}
	if st.meals, err = s.Meals(); err != nil {
		return state{}, fmt.Errorf("loading meals: %w", err)
	}
	if st.workouts, err = s.Workouts(); err != nil {
		return state{}, fmt.Errorf("loading workouts: %w", err)
	}
	return st, nil
}

func (t *Tracker) adopt(st state) {
	t.limit, t.total = st.limit, st.total
	t.meals, t.workouts = st.meals, st.workouts
}

// Initialize loads state from the store. Calling it again reloads.
func (t *Tracker) Initialize() error {
	st, err := loadState(t.store)
	if err != nil {
		return err
	}
	t.adopt(st)
	t.initialized = true

	t.log.Debug("tracker loaded",
		zap.Int("limit", st.limit),
		zap.Int("total", st.total),
		zap.Int("meals", len(st.meals)),
		zap.Int("workouts", len(st.workouts)))
	return nil
}

// Initialized reports whether Initialize has succeeded.
func (t *Tracker) Initialized() bool { return t.initialized }

// commit runs write in one store transaction and then adopts what the
// transaction left on disk. Another process may have written since this
// Tracker last loaded, so write must work from the stored values, not the
// cached ones. Memory is untouched when the transaction fails.
func (t *Tracker) commit(write func(tx store.Store) error) error {
	var st state
	err := t.store.Update(func(tx store.Store) error {
		if err := write(tx); err != nil {
			return err
		}
		var err error
		st, err = loadState(tx)
		return err
	})
	if err != nil {
		return err
	}
	t.adopt(st)
	return nil
}

// shiftTotal adds delta to the stored total.
func shiftTotal(tx store.Store, delta int) error {
	total, err := tx.TotalCalories()
	if err != nil {
		return err
	}
	return tx.SetTotalCalories(total + delta)
}

// matchedCalories sums the calories of every stored entry with the given id,
// since the store removes all of them.
func matchedCalories[T any](items []T, id string, item func(T) model.Item) (int, bool) {
	sum, found := 0, false
	for _, it := range items {
		if i := item(it); i.ID == id {
			sum += i.Calories
			found = true
		}
	}
	return sum, found
}

// AddMeal appends m and adds its calories to the total.
func (t *Tracker) AddMeal(m model.Meal) (model.Summary, error) {
	if !t.initialized {
		return model.Summary{}, ErrNotInitialized
	}
	err := t.commit(func(tx store.Store) error {
		if err := shiftTotal(tx, m.Calories); err != nil {
			return err
		}
		return tx.AppendMeal(m)
	})
	if err != nil {
		return t.Summary(), fmt.Errorf("adding meal: %w", err)
	}

	t.log.Debug("meal added", zap.String("id", m.ID), zap.Int("calories", m.Calories), zap.Int("total", t.total))
	return t.Summary(), nil
}

// AddWorkout appends w and subtracts its calories from the total.
func (t *Tracker) AddWorkout(w model.Workout) (model.Summary, error) {
	if !t.initialized {
		return model.Summary{}, ErrNotInitialized
	}
	err := t.commit(func(tx store.Store) error {
		if err := shiftTotal(tx, -w.Calories); err != nil {
			return err
		}
		return tx.AppendWorkout(w)
	})
	if err != nil {
		return t.Summary(), fmt.Errorf("adding workout: %w", err)
	}

	t.log.Debug("workout added", zap.String("id", w.ID), zap.Int("calories", w.Calories), zap.Int("total", t.total))
	return t.Summary(), nil
}

// RemoveMeal drops the meal with the given id. Unknown ids are a no-op.
func (t *Tracker) RemoveMeal(id string) (model.Summary, error) {
	if !t.initialized {
		return model.Summary{}, ErrNotInitialized
	}
	if !slices.ContainsFunc(t.meals, func(m model.Meal) bool { return m.ID == id }) {
		return t.Summary(), nil
	}

	err := t.commit(func(tx store.Store) error {
		meals, err := tx.Meals()
		if err != nil {
			return err
		}
		cal, found := matchedCalories(meals, id, func(m model.Meal) model.Item { return m.Item })
		if !found {
			return nil
		}
		if err := shiftTotal(tx, -cal); err != nil {
			return err
		}
		return tx.RemoveMeal(id)
	})
	if err != nil {
		return t.Summary(), fmt.Errorf("removing meal: %w", err)
	}

	t.log.Debug("meal removed", zap.String("id", id), zap.Int("total", t.total))
	return t.Summary(), nil
}

// RemoveWorkout drops the workout with the given id. Unknown ids are a no-op.
func (t *Tracker) RemoveWorkout(id string) (model.Summary, error) {
	if !t.initialized {
		return model.Summary{}, ErrNotInitialized
	}
	if !slices.ContainsFunc(t.workouts, func(w model.Workout) bool { return w.ID == id }) {
		return t.Summary(), nil
	}

	err := t.commit(func(tx store.Store) error {
		workouts, err := tx.Workouts()
		if err != nil {
			return err
		}
		cal, found := matchedCalories(workouts, id, func(w model.Workout) model.Item { return w.Item })
		if !found {
			return nil
		}
		if err := shiftTotal(tx, cal); err != nil {
			return err
		}
		return tx.RemoveWorkout(id)
	})
	if err != nil {
		return t.Summary(), fmt.Errorf("removing workout: %w", err)
	}

	t.log.Debug("workout removed", zap.String("id", id), zap.Int("total", t.total))
	return t.Summary(), nil
}

// Reset clears the total and both lists and erases the store. The limit is
// kept and written back, so a later Initialize sees the same limit.
func (t *Tracker) Reset() (model.Summary, error) {
	if !t.initialized {
		return model.Summary{}, ErrNotInitialized
	}
	limit := t.limit
	err := t.commit(func(tx store.Store) error {
		if err := tx.ClearAll(); err != nil {
			return err
		}
		return tx.SetCalorieLimit(limit)
	})
	if err != nil {
		return t.Summary(), fmt.Errorf("resetting: %w", err)
	}

	t.log.Debug("tracker reset", zap.Int("limit", limit))
	return t.Summary(), nil
}

// SetLimit changes the daily calorie limit. Totals are untouched.
func (t *Tracker) SetLimit(limit int) (model.Summary, error) {
	if !t.initialized {
		return model.Summary{}, ErrNotInitialized
	}
	err := t.commit(func(tx store.Store) error {
		return tx.SetCalorieLimit(limit)
	})
	if err != nil {
		return t.Summary(), fmt.Errorf("setting limit: %w", err)
	}
	t.log.Debug("limit set", zap.Int("limit", limit))
	return t.Summary(), nil
}

// CalorieLimit returns the daily target.
func (t *Tracker) CalorieLimit() int { return t.limit }

// TotalCalories returns the cached net balance.
func (t *Tracker) TotalCalories() int { return t.total }

// Consumed sums meal calories.
func (t *Tracker) Consumed() int {
	sum := 0
	for _, m := range t.meals {
		sum += m.Calories
	}
	return sum
}

// Burned sums workout calories.
func (t *Tracker) Burned() int {
	sum := 0
	for _, w := range t.workouts {
		sum += w.Calories
	}
	return sum
}

// Remaining is the limit minus the total. It may be negative.
func (t *Tracker) Remaining() int { return t.limit - t.total }

// Percentage returns the total as a percentage of the limit, capped at 100.
// It is not floored: a negative balance gives a negative percentage.
func (t *Tracker) Percentage() (float64, error) {
	return Percentage(t.total, t.limit)
}

// Percentage computes min(total/limit*100, 100).
func Percentage(total, limit int) (float64, error) {
	if limit == 0 {
		return 0, ErrDivisionByZero
	}
	pct := float64(total) * 100 / float64(limit)
	return min(pct, 100), nil
}

// Meals returns a copy of the meal list in insertion order.
func (t *Tracker) Meals() []model.Meal { return slices.Clone(t.meals) }

// Workouts returns a copy of the workout list in insertion order.
func (t *Tracker) Workouts() []model.Workout { return slices.Clone(t.workouts) }

// FilterMeals returns meals whose name contains text, ignoring case.
func (t *Tracker) FilterMeals(text string) []model.Meal {
	return filterByName(t.meals, text, func(m model.Meal) string { return m.Name })
}

// FilterWorkouts returns workouts whose name contains text, ignoring case.
func (t *Tracker) FilterWorkouts(text string) []model.Workout {
	return filterByName(t.workouts, text, func(w model.Workout) string { return w.Name })
}

func filterByName[T any](items []T, text string, name func(T) string) []T {
	needle := strings.ToLower(text)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(name(it)), needle) {
			out = append(out, it)
		}
	}
	return out
}

// Summary snapshots every derived aggregate.
func (t *Tracker) Summary() model.Summary {
	s := model.Summary{
		Limit:        t.limit,
		Total:        t.total,
		Consumed:     t.Consumed(),
		Burned:       t.Burned(),
		Remaining:    t.Remaining(),
		MealCount:    len(t.meals),
		WorkoutCount: len(t.workouts),
	}
	s.OverLimit = s.Remaining <= 0
	pct, err := t.Percentage()
	if err != nil {
		s.LimitZero = true
	} else {
		s.Percentage = pct
	}
	return s
}
