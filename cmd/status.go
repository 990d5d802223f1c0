package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's calorie balance",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	t, s, err := openTracker()
	if err != nil {
		return err
	}
	defer s.Close()

	printSummary(t.Summary())
	return nil
}

// printSummary is the shared post-mutation output.
func printSummary(sum model.Summary) {
	if flagQuiet {
		return
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle("CALORIES  Today"))
	fmt.Println()
	fmt.Print(cli.RenderSummary(sum))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderProgressBar(sum, 30))
	if sum.OverLimit {
		fmt.Println("\n  You are at or over your daily limit.")
	}
	fmt.Printf("\n  %d meals, %d workouts\n", sum.MealCount, sum.WorkoutCount)
}
