// Package model defines domain types for kcal meals, workouts, and daily totals.
package model

// Item is the shared shape of everything logged against the daily balance.
// The JSON form is the durable layout: {"id","name","calories"}.
type Item struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Calories int    `json:"calories" yaml:"calories"`
}

// Meal is an Item whose calories count as consumed.
type Meal struct {
	Item `yaml:",inline"`
}

// Workout is an Item whose calories count as burned.
type Workout struct {
	Item `yaml:",inline"`
}

// Kind distinguishes the two item lists.
type Kind int

const (
	KindMeal Kind = iota
	KindWorkout
)

func (k Kind) String() string {
	if k == KindWorkout {
		return "workout"
	}
	return "meal"
}
