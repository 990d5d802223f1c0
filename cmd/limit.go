package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kcal/internal/cli"
)

var limitCmd = &cobra.Command{
	Use:   "limit CALORIES",
	Short: "Set the daily calorie limit",
	Args:  cobra.ExactArgs(1),
	RunE:  runLimit,
}

func init() {
	rootCmd.AddCommand(limitCmd)
}

func runLimit(_ *cobra.Command, args []string) error {
	if strings.TrimSpace(args[0]) == "" {
		return errors.New("please add a limit")
	}
	limit, err := cli.ParseCalories(args[0])
	if err != nil {
		return err
	}

	t, s, err := openTracker()
	if err != nil {
		return err
	}
	defer s.Close()

	sum, err := t.SetLimit(limit)
	if err != nil {
		return err
	}
	say("  Daily limit set to %s\n", cli.FormatCalories(limit))
	printSummary(sum)
	return nil
}
