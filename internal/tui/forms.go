package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/model"
)

// action identifies what a completed form does.
type action int

const (
	actionNone action = iota
	actionAddMeal
	actionAddWorkout
	actionSetLimit
	actionDelete
	actionReset
)

func addActionFor(k model.Kind) action {
	if k == model.KindWorkout {
		return actionAddWorkout
	}
	return actionAddMeal
}

func (a action) title() string {
	switch a {
	case actionAddMeal:
		return "Add Meal"
	case actionAddWorkout:
		return "Add Workout"
	case actionSetLimit:
		return "Daily Limit"
	case actionDelete:
		return "Delete"
	case actionReset:
		return "Reset"
	}
	return ""
}

// formValues holds the fields bound to the open huh form.
type formValues struct {
	name     string
	calories string
	limit    string
	confirm  bool

	target model.Item
	kind   model.Kind
}

var (
	errFillAllFields = errors.New("please fill in all fields")
	errAddLimit      = errors.New("please add a limit")
)

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errFillAllFields
	}
	return nil
}

func validateCalories(s string) error {
	if strings.TrimSpace(s) == "" {
		return errFillAllFields
	}
	_, err := cli.ParseCalories(s)
	return err
}

func validateLimit(s string) error {
	if strings.TrimSpace(s) == "" {
		return errAddLimit
	}
	_, err := cli.ParseCalories(s)
	return err
}

// openForm builds the huh form for act and gives it focus.
func (a App) openForm(act action) (tea.Model, tea.Cmd) {
	v := &formValues{}
	var group *huh.Group

	switch act {
	case actionAddMeal, actionAddWorkout:
		v.kind = model.KindMeal
		if act == actionAddWorkout {
			v.kind = model.KindWorkout
		}
		group = huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder(fmt.Sprintf("%s name", v.kind)).
				Value(&v.name).
				Validate(validateName),
			huh.NewInput().
				Title("Calories").
				Placeholder("e.g. 450").
				Value(&v.calories).
				Validate(validateCalories),
		)

	case actionSetLimit:
		v.limit = fmt.Sprintf("%d", a.sum.Limit)
		group = huh.NewGroup(
			huh.NewInput().
				Title("Daily calorie limit").
				Value(&v.limit).
				Validate(validateLimit),
		)

	case actionDelete:
		item, ok := a.selected()
		if !ok {
			return a, nil
		}
		v.target = item
		v.kind = a.activeKind()
		group = huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s %q (%s)?", v.kind, item.Name, cli.FormatCalories(item.Calories))).
				Affirmative("Delete").
				Negative("Keep").
				Value(&v.confirm),
		)

	case actionReset:
		group = huh.NewGroup(
			huh.NewConfirm().
				Title("Remove all meals and workouts?").
				Description("The daily limit is kept.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(&v.confirm),
		)

	default:
		return a, nil
	}

	a.vals = v
	a.pending = act
	a.form = huh.NewForm(group).
		WithShowHelp(false).
		WithWidth(a.formWidth())
	return a, a.form.Init()
}

func (a App) formWidth() int {
	return max(min(a.width, maxContentWidth)-6, 30)
}

func (a *App) closeForm() {
	a.form = nil
	a.vals = nil
	a.pending = actionNone
}

// updateForm forwards messages to the open form and applies it on completion.
func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.applyForm()
		a.closeForm()
		return a, nil
	case huh.StateAborted:
		a.closeForm()
		a.setMessage("Cancelled", false)
		return a, nil
	}
	return a, cmd
}

// applyForm performs the tracker mutation the completed form describes.
func (a *App) applyForm() {
	v := a.vals
	var (
		sum model.Summary
		err error
		msg string
	)

	switch a.pending {
	case actionAddMeal, actionAddWorkout:
		cal, perr := cli.ParseCalories(v.calories)
		if perr != nil {
			a.setMessage(perr.Error(), true)
			return
		}
		if v.kind == model.KindWorkout {
			sum, err = a.tracker.AddWorkout(model.NewWorkout(v.name, cal))
		} else {
			sum, err = a.tracker.AddMeal(model.NewMeal(v.name, cal))
		}
		msg = fmt.Sprintf("Added %s %q", v.kind, v.name)

	case actionSetLimit:
		limit, perr := cli.ParseCalories(v.limit)
		if perr != nil {
			a.setMessage(perr.Error(), true)
			return
		}
		sum, err = a.tracker.SetLimit(limit)
		msg = "Limit set to " + cli.FormatCalories(limit)

	case actionDelete:
		if !v.confirm {
			a.setMessage("Kept "+v.target.Name, false)
			return
		}
		if v.kind == model.KindWorkout {
			sum, err = a.tracker.RemoveWorkout(v.target.ID)
		} else {
			sum, err = a.tracker.RemoveMeal(v.target.ID)
		}
		msg = fmt.Sprintf("Deleted %s %q", v.kind, v.target.Name)

	case actionReset:
		if !v.confirm {
			a.setMessage("Reset cancelled", false)
			return
		}
		sum, err = a.tracker.Reset()
		for i := range a.lists {
			a.lists[i].query = ""
		}
		msg = "All entries cleared"

	default:
		return
	}

	if err != nil {
		a.log.Error("apply form", zap.String("action", a.pending.title()), zap.Error(err))
		a.setMessage(err.Error(), true)
		return
	}
	a.sum = sum
	a.clampCursor()
	a.setMessage(msg, false)
}
