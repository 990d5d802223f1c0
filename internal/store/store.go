// Package store persists the current day's tracker state in a key-value store.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/kcal/internal/model"
)

// Durable keys. These names are shared with earlier sessions' data and must not change.
const (
	KeyCalorieLimit  = "calorieLimit"
	KeyTotalCalories = "totalCalories"
	KeyMeals         = "meals"
	KeyWorkouts      = "workouts"
)

// ErrCorrupt is returned when a stored value cannot be decoded.
var ErrCorrupt = errors.New("store: corrupt value")

// Store is the durable copy of the tracker state.
//
// Collection writes are read-modify-write over the whole list. Update runs
// fn against a transactional view: either every write inside fn lands or none do.
type Store interface {
	CalorieLimit() (int, error)
	SetCalorieLimit(limit int) error
	TotalCalories() (int, error)
	SetTotalCalories(total int) error

	Meals() ([]model.Meal, error)
	AppendMeal(m model.Meal) error
	RemoveMeal(id string) error

	Workouts() ([]model.Workout, error)
	AppendWorkout(w model.Workout) error
	RemoveWorkout(id string) error

	ClearAll() error

	Update(fn func(Store) error) error
	Close() error
}

// kv is the raw medium each backend provides.
type kv interface {
	get(key string) (value []byte, ok bool, err error)
	put(key string, value []byte) error
	deleteAll() error
}

// accessor implements Store over a kv. begin is the backend's transaction
// primitive; it is nil when the accessor is already bound to a transaction.
type accessor struct {
	kv    kv
	begin func(fn func(kv) error) error
}

func (a accessor) Update(fn func(Store) error) error {
	if a.begin == nil {
		return fn(a)
	}
	return a.begin(func(tx kv) error {
		return fn(accessor{kv: tx})
	})
}

// Close is a no-op for transaction-bound accessors; backends override it.
func (a accessor) Close() error { return nil }

func (a accessor) atomically(fn func(accessor) error) error {
	if a.begin == nil {
		return fn(a)
	}
	return a.begin(func(tx kv) error {
		return fn(accessor{kv: tx})
	})
}

func (a accessor) CalorieLimit() (int, error) {
	return readInt(a.kv, KeyCalorieLimit, model.DefaultCalorieLimit)
}

func (a accessor) SetCalorieLimit(limit int) error {
	return writeInt(a.kv, KeyCalorieLimit, limit)
}

func (a accessor) TotalCalories() (int, error) {
	return readInt(a.kv, KeyTotalCalories, 0)
}

func (a accessor) SetTotalCalories(total int) error {
	return writeInt(a.kv, KeyTotalCalories, total)
}

func (a accessor) Meals() ([]model.Meal, error) {
	return readList[model.Meal](a.kv, KeyMeals)
}

func (a accessor) AppendMeal(m model.Meal) error {
	return a.atomically(func(tx accessor) error {
		meals, err := readList[model.Meal](tx.kv, KeyMeals)
		if err != nil {
			return err
		}
		return writeList(tx.kv, KeyMeals, append(meals, m))
	})
}

func (a accessor) RemoveMeal(id string) error {
	return a.atomically(func(tx accessor) error {
		meals, err := readList[model.Meal](tx.kv, KeyMeals)
		if err != nil {
			return err
		}
		return writeList(tx.kv, KeyMeals, without(meals, id, func(m model.Meal) string { return m.ID }))
	})
}

func (a accessor) Workouts() ([]model.Workout, error) {
	return readList[model.Workout](a.kv, KeyWorkouts)
}

func (a accessor) AppendWorkout(w model.Workout) error {
	return a.atomically(func(tx accessor) error {
		workouts, err := readList[model.Workout](tx.kv, KeyWorkouts)
		if err != nil {
			return err
		}
		return writeList(tx.kv, KeyWorkouts, append(workouts, w))
	})
}

func (a accessor) RemoveWorkout(id string) error {
	return a.atomically(func(tx accessor) error {
		workouts, err := readList[model.Workout](tx.kv, KeyWorkouts)
		if err != nil {
			return err
		}
		return writeList(tx.kv, KeyWorkouts, without(workouts, id, func(w model.Workout) string { return w.ID }))
	})
}

func (a accessor) ClearAll() error {
	return a.kv.deleteAll()
}

func readInt(k kv, key string, def int) (int, error) {
	raw, ok, err := k.get(key)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q", ErrCorrupt, key, raw)
	}
	return n, nil
}

func writeInt(k kv, key string, n int) error {
	if err := k.put(key, []byte(strconv.Itoa(n))); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func readList[T any](k kv, key string) ([]T, error) {
	raw, ok, err := k.get(key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	items := []T{}
	if !ok {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func writeList[T any](k kv, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := k.put(key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// without drops every entry whose id matches, keeping order.
func without[T any](items []T, id string, idOf func(T) string) []T {
	n := 0
	for _, it := range items {
		if idOf(it) != id {
			items[n] = it
			n++
		}
	}
	return items[:n]
}
