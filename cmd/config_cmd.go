package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/kcal/internal/config"
	"github.com/theirongolddev/kcal/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	backend, dataDir := storeLocation()
	fmt.Println("  [General]")
	fmt.Printf("    Backend:   %s\n", backend)
	fmt.Printf("    Data dir:  %s\n", dataDir)
	if p := store.Path(backend, dataDir); p != "" {
		fmt.Printf("    Store:     %s\n", p)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `kcal setup` to reconfigure.")
	return nil
}
