package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/tracker"
)

var errMissingFields = errors.New("please fill in all fields")

var flagFilter string

func init() {
	rootCmd.AddCommand(newItemCmd(model.KindMeal), newItemCmd(model.KindWorkout))
}

// newItemCmd builds the add/rm/ls tree shared by meals and workouts.
func newItemCmd(kind model.Kind) *cobra.Command {
	name := kind.String()

	parent := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Add, remove, or list %ss", name),
	}

	add := &cobra.Command{
		Use:   "add NAME CALORIES",
		Short: fmt.Sprintf("Log a %s", name),
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAddItem(kind, args[0], args[1])
		},
	}

	rm := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   fmt.Sprintf("Remove a %s by id (a unique prefix is enough)", name),
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRemoveItem(kind, args[0])
		},
	}

	ls := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   fmt.Sprintf("List today's %ss", name),
		RunE: func(_ *cobra.Command, _ []string) error {
			return runListItems(kind, flagFilter)
		},
	}
	ls.Flags().StringVarP(&flagFilter, "filter", "f", "", "Only show items whose name contains this text")

	parent.AddCommand(add, rm, ls)
	return parent
}

func runAddItem(kind model.Kind, name, calories string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(calories) == "" {
		return errMissingFields
	}
	cal, err := cli.ParseCalories(calories)
	if err != nil {
		return err
	}

	t, s, err := openTracker()
	if err != nil {
		return err
	}
	defer s.Close()

	var sum model.Summary
	var id string
	if kind == model.KindMeal {
		m := model.NewMeal(name, cal)
		id = m.ID
		sum, err = t.AddMeal(m)
	} else {
		w := model.NewWorkout(name, cal)
		id = w.ID
		sum, err = t.AddWorkout(w)
	}
	if err != nil {
		return err
	}

	say("  Added %s %q (%s) [%s]\n", kind, name, cli.FormatCalories(cal), cli.ShortID(id))
	printSummary(sum)
	return nil
}

func runRemoveItem(kind model.Kind, ref string) error {
	t, s, err := openTracker()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveID(itemsOf(t, kind), ref)
	if err != nil {
		return err
	}

	before := t.Summary()
	var sum model.Summary
	if kind == model.KindMeal {
		sum, err = t.RemoveMeal(id)
	} else {
		sum, err = t.RemoveWorkout(id)
	}
	if err != nil {
		return err
	}

	if sum == before {
		say("  No %s with id %q, nothing changed\n", kind, ref)
		return nil
	}
	say("  Removed %s %s\n", kind, cli.ShortID(id))
	printSummary(sum)
	return nil
}

func runListItems(kind model.Kind, filter string) error {
	t, s, err := openTracker()
	if err != nil {
		return err
	}
	defer s.Close()

	var items []model.Item
	if kind == model.KindMeal {
		for _, m := range t.FilterMeals(filter) {
			items = append(items, m.Item)
		}
	} else {
		for _, w := range t.FilterWorkouts(filter) {
			items = append(items, w.Item)
		}
	}

	if filter != "" && len(items) == 0 {
		fmt.Printf("  No %ss found with %q\n", kind, filter)
		return nil
	}
	fmt.Println()
	fmt.Print(cli.RenderItems(kind, items))
	return nil
}

func itemsOf(t *tracker.Tracker, kind model.Kind) []model.Item {
	var items []model.Item
	if kind == model.KindMeal {
		for _, m := range t.Meals() {
			items = append(items, m.Item)
		}
		return items
	}
	for _, w := range t.Workouts() {
		items = append(items, w.Item)
	}
	return items
}

// resolveID expands a unique id prefix. An exact match always wins; no match
// returns ref unchanged so the tracker treats it as an unknown id. A blank
// ref is never expanded.
func resolveID(items []model.Item, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return ref, nil
	}
	var matches []string
	for _, it := range items {
		if it.ID == ref {
			return ref, nil
		}
		if strings.HasPrefix(it.ID, ref) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return ref, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d items, use more characters", ref, len(matches))
	}
}
