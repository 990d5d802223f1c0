package model

import "github.com/google/uuid"

// newID is swapped in tests that need deterministic identifiers.
var newID = uuid.NewString

// NewMeal builds a Meal with a fresh random identifier.
// Identifiers are random v4 UUIDs: collisions are improbable, not impossible.
func NewMeal(name string, calories int) Meal {
	return Meal{Item{ID: newID(), Name: name, Calories: calories}}
}

// NewWorkout builds a Workout with a fresh random identifier.
func NewWorkout(name string, calories int) Workout {
	return Workout{Item{ID: newID(), Name: name, Calories: calories}}
}
