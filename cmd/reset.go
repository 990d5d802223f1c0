package cmd

import (
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all meals and workouts (the daily limit is kept)",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	if !flagYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Reset your tracker?").
			Description("This will clear all meals and workouts.").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			say("  Reset cancelled\n")
			return nil
		}
	}

	t, s, err := openTracker()
	if err != nil {
		return err
	}
	defer s.Close()

	sum, err := t.Reset()
	if err != nil {
		return err
	}
	say("  Tracker reset\n")
	printSummary(sum)
	return nil
}
