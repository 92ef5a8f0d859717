package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/kpiboard/internal/config"
	"github.com/theirongolddev/kpiboard/internal/model"
	"github.com/theirongolddev/kpiboard/internal/pipeline"
	"github.com/theirongolddev/kpiboard/internal/store"
	"github.com/theirongolddev/kpiboard/internal/tui"
	"github.com/theirongolddev/kpiboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive KPI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	log, closeLog := newFileLogger(config.LogPath())
	defer closeLog()

	cfg := loadConfig(log)
	theme.SetActive(cfg.Appearance.Theme)

	gens, err := newFactory(cfg)
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	path := dbPath(cfg)
	app := tui.NewApp(tui.Options{
		Property:  cfg.General.Property,
		Load:      func() ([]model.Card, error) { return tuiCards(path, log) },
		Gens:      gens,
		NeedSetup: !config.Exists(),
		Log:       log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// tuiCards reads the store, falling back to the built-in fixtures when it
// cannot be opened.
func tuiCards(path string, log *zap.Logger) ([]model.Card, error) {
	st, err := store.Open(path, log)
	if err != nil {
		log.Warn("store unavailable, showing fixtures", zap.String("path", path), zap.Error(err))
		return pipeline.BuildCards(store.DefaultMetrics(nowFunc()()), nil), nil
	}
	defer func() { _ = st.Close() }()
	return loadCards(st)
}

// newFileLogger logs to path since the terminal belongs to the dashboard.
func newFileLogger(path string) (*zap.Logger, func()) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zap.NewNop(), func() {}
	}
	//nolint:gosec // log path is under the user's cache dir
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return zap.NewNop(), func() {}
	}

	level := zapcore.InfoLevel
	if flagVerbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(f), level)
	log := zap.New(core)
	return log, func() {
		_ = log.Sync()
		_ = f.Close()
	}
}
