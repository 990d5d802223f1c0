package cmd

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/kcal/internal/store"
	"github.com/theirongolddev/kcal/internal/tui"
	"github.com/theirongolddev/kcal/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appCfg.Appearance.Theme)

	// The alt screen owns the terminal, so diagnostics go to a file.
	backend, dataDir := storeLocation()
	log := zap.NewNop()
	if flagVerbose {
		l, err := buildLogger(appCfg, true, filepath.Join(dataDir, "kcal.log"))
		if err == nil {
			log = l
			defer func() { _ = l.Sync() }()
		}
	}
	logger = log

	t, s, err := openTracker()
	if err != nil {
		return err
	}
	defer s.Close()

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(t, tui.Options{
		StorePath: store.Path(backend, dataDir),
		Logger:    log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	final, err := p.Run()
	if m, ok := final.(tui.App); ok {
		_ = m.Close()
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
