package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/kpiboard/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var (
	flagServeAddr         string
	flagServeInterval     time.Duration
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve cards, pickup series and sparklines over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().DurationVar(&flagServeInterval, "interval", 10*time.Second, "Store polling interval")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Request logs are info level.
	log := newLoggerAt(zapcore.InfoLevel)
	defer func() { _ = log.Sync() }()

	cfg := loadConfig(log)
	now, err := asOf()
	if err != nil {
		return err
	}

	st, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	svc := server.New(server.Config{
		Addr:         addr,
		Property:     cfg.General.Property,
		Seed:         seed(cfg),
		Now:          now,
		Interval:     flagServeInterval,
		EventsBuffer: flagServeEventsBuffer,
	}, st, log)

	fmt.Fprintf(os.Stderr, "  kpiboard listening on http://%s\n", addr)
	fmt.Fprintf(os.Stderr, "  Polling %s every %s\n", dbPath(cfg), flagServeInterval)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
