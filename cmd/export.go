package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kcal/internal/export"
)

var flagFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print today's meals, workouts, and totals as JSON or YAML",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", export.FormatJSON, "Output format: json or yaml")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	t, s, err := openTracker()
	if err != nil {
		return err
	}
	defer s.Close()

	return export.Write(os.Stdout, flagFormat, export.NewSnapshot(t, time.Now()))
}
