// Package export writes a snapshot of the current day as JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/kcal/internal/model"
)

// Formats accepted by Write.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Snapshot is the exported view of the tracker.
type Snapshot struct {
	ExportedAt    time.Time       `json:"exported_at" yaml:"exported_at"`
	CalorieLimit  int             `json:"calorie_limit" yaml:"calorie_limit"`
	TotalCalories int             `json:"total_calories" yaml:"total_calories"`
	Consumed      int             `json:"consumed" yaml:"consumed"`
	Burned        int             `json:"burned" yaml:"burned"`
	Remaining     int             `json:"remaining" yaml:"remaining"`
	Percentage    *float64        `json:"percentage" yaml:"percentage"` // nil when the limit is zero
	Meals         []model.Meal    `json:"meals" yaml:"meals"`
	Workouts      []model.Workout `json:"workouts" yaml:"workouts"`
}

// Source is the read side of the tracker that a snapshot needs.
type Source interface {
	Summary() model.Summary
	Meals() []model.Meal
	Workouts() []model.Workout
}

// NewSnapshot captures src at time now.
func NewSnapshot(src Source, now time.Time) Snapshot {
	s := src.Summary()
	snap := Snapshot{
		ExportedAt:    now.UTC(),
		CalorieLimit:  s.Limit,
		TotalCalories: s.Total,
		Consumed:      s.Consumed,
		Burned:        s.Burned,
		Remaining:     s.Remaining,
		Meals:         src.Meals(),
		Workouts:      src.Workouts(),
	}
	if !s.LimitZero {
		pct := s.Percentage
		snap.Percentage = &pct
	}
	return snap
}

// Write encodes snap to w in the given format.
func Write(w io.Writer, format string, snap Snapshot) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q (want json or yaml)", format)
	}
}
