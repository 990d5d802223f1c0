// Package cmd implements the kcal CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/theirongolddev/kcal/internal/config"
	"github.com/theirongolddev/kcal/internal/store"
	"github.com/theirongolddev/kcal/internal/tracker"
)

var (
	flagBackend string
	flagDataDir string
	flagQuiet   bool
	flagVerbose bool

	logger = zap.NewNop()
	// appCfg is loaded once in PersistentPreRunE.
	appCfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "kcal",
	Short: "Daily calorie tracker",
	Long:  "Log meals and workouts, and keep a running calorie balance against a daily limit.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appCfg = cfg
		logger, err = buildLogger(cfg, flagVerbose, "stderr")
		return err
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
	RunE:          runStatus,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "Storage backend: sqlite, badger, memory (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default from config or XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// buildLogger builds the diagnostic logger. --verbose wins over the config level.
func buildLogger(cfg config.Config, verbose bool, output string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.OutputPaths = []string{output}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else if cfg.Log.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("config log.level: %w", err)
		}
		zcfg.Level = level
	}

	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// storeLocation resolves backend and data dir from flags, then config.
func storeLocation() (backend, dataDir string) {
	backend = appCfg.General.Backend
	if flagBackend != "" {
		backend = flagBackend
	}
	dataDir = config.DataDir(appCfg)
	if flagDataDir != "" {
		dataDir = flagDataDir
	}
	return backend, dataDir
}

// openTracker is the shared load path used by all commands.
// The caller must close the returned store.
func openTracker() (*tracker.Tracker, store.Store, error) {
	backend, dataDir := storeLocation()
	logger.Debug("opening store", zap.String("backend", backend), zap.String("data_dir", dataDir))

	s, err := store.Open(backend, dataDir, store.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	t := tracker.New(s, tracker.WithLogger(logger))
	if err := t.Initialize(); err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	return t, s, nil
}

// say prints unless --quiet.
func say(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf(format, args...)
}
