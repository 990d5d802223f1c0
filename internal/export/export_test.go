package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/kcal/internal/model"
)

type fakeSource struct {
	sum      model.Summary
	meals    []model.Meal
	workouts []model.Workout
}

func (f fakeSource) Summary() model.Summary    { return f.sum }
func (f fakeSource) Meals() []model.Meal       { return f.meals }
func (f fakeSource) Workouts() []model.Workout { return f.workouts }

var when = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func sample() fakeSource {
	return fakeSource{
		sum: model.Summary{Limit: 2000, Total: -100, Consumed: 300, Burned: 400, Remaining: 2100, Percentage: -5},
		meals: []model.Meal{
			{Item: model.Item{ID: "m1", Name: "Eggs", Calories: 300}},
		},
		workouts: []model.Workout{
			{Item: model.Item{ID: "w1", Name: "Run", Calories: 400}},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, NewSnapshot(sample(), when)))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.EqualValues(t, 2000, got["calorie_limit"])
	assert.EqualValues(t, -5, got["percentage"])
	meals := got["meals"].([]any)
	require.Len(t, meals, 1)
	assert.Equal(t, "Eggs", meals[0].(map[string]any)["name"])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, NewSnapshot(sample(), when)))

	var got Snapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, -100, got.TotalCalories)
	require.Len(t, got.Workouts, 1)
	assert.Equal(t, "Run", got.Workouts[0].Name)
	assert.Equal(t, 400, got.Workouts[0].Calories)
}

func TestZeroLimitExportsNullPercentage(t *testing.T) {
	src := sample()
	src.sum.LimitZero = true
	snap := NewSnapshot(src, when)
	assert.Nil(t, snap.Percentage)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, snap))
	assert.Contains(t, buf.String(), `"percentage": null`)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", NewSnapshot(sample(), when))
	assert.Error(t, err)
}
