package model

// DefaultCalorieLimit is the daily target used when none has been saved.
const DefaultCalorieLimit = 2000

// Summary holds the aggregates a renderer needs after any mutation.
type Summary struct {
	Limit     int
	Total     int // net balance: Consumed - Burned
	Consumed  int
	Burned    int
	Remaining int

	// Percentage is Total as a share of Limit, capped at 100 but not
	// floored at 0. Zero when LimitZero is set.
	Percentage float64
	LimitZero  bool
	OverLimit  bool // Remaining <= 0

	MealCount    int
	WorkoutCount int
}
