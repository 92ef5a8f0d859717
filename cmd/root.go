package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/kpiboard/internal/config"
	"github.com/theirongolddev/kpiboard/internal/model"
	"github.com/theirongolddev/kpiboard/internal/pickup"
	"github.com/theirongolddev/kpiboard/internal/pipeline"
	"github.com/theirongolddev/kpiboard/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagDB      string
	flagSeed    uint64
	flagAsOf    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kpiboard",
	Short: "Hotel operations KPI dashboard",
	Long:  "Revenue, expense, occupancy and ADR cards with 7-day pickup sparklines.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.RunE = runSummary
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite metrics database (default from config)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "Seed pickup series for reproducible output")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Pin today's date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// newLogger returns the stderr logger used by all non-TUI commands.
func newLogger() *zap.Logger {
	return newLoggerAt(zapcore.WarnLevel)
}

// newLoggerAt logs at level, or at debug with --verbose.
func newLoggerAt(level zapcore.Level) *zap.Logger {
	if flagVerbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

// loadConfig reads the config file, falling back to defaults on error.
func loadConfig(log *zap.Logger) config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warn("config unreadable, using defaults", zap.String("path", config.ConfigPath()), zap.Error(err))
		return config.DefaultConfig()
	}
	return cfg
}

func dbPath(cfg config.Config) string {
	if flagDB != "" {
		return flagDB
	}
	return cfg.DBPath()
}

func openStore(cfg config.Config, log *zap.Logger) (*store.Store, error) {
	path := dbPath(cfg)
	log.Debug("opening store", zap.String("path", path))
	st, err := store.Open(path, log)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return st, nil
}

// asOf returns the pinned clock from --as-of, or nil for the wall clock.
func asOf() (func() time.Time, error) {
	if flagAsOf == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, flagAsOf, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --as-of %q (want YYYY-MM-DD)", flagAsOf)
	}
	return func() time.Time { return t }, nil
}

// nowFunc is the --as-of clock, or the wall clock when unset or invalid.
func nowFunc() func() time.Time {
	if clock, err := asOf(); err == nil && clock != nil {
		return clock
	}
	return time.Now
}

// seed returns the series seed from --seed, else from config.
func seed(cfg config.Config) *uint64 {
	if rootCmd.PersistentFlags().Changed("seed") {
		s := flagSeed
		return &s
	}
	return cfg.Pickup.Seed
}

func newFactory(cfg config.Config) (pickup.Factory, error) {
	now, err := asOf()
	if err != nil {
		return pickup.Factory{}, err
	}
	return pickup.Factory{Seed: seed(cfg), Now: now}, nil
}

// loadCards builds the cards from the store.
func loadCards(st *store.Store) ([]model.Card, error) {
	metrics, err := st.Metrics()
	if err != nil {
		return nil, fmt.Errorf("loading metrics: %w", err)
	}
	periods, err := st.Periods()
	if err != nil {
		return nil, fmt.Errorf("loading periods: %w", err)
	}
	return pipeline.BuildCards(metrics, periods), nil
}

// findCard loads the cards and picks key.
func findCard(st *store.Store, key string) (model.Card, error) {
	cards, err := loadCards(st)
	if err != nil {
		return model.Card{}, err
	}
	c, ok := pipeline.Find(cards, key)
	if !ok {
		return model.Card{}, fmt.Errorf("%s: %w", key, store.ErrNotFound)
	}
	return c, nil
}
