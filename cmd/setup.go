package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/kpiboard/internal/config"
	"github.com/theirongolddev/kpiboard/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	cfg := loadConfig(log)

	vals := &tui.SetupValues{
		Property: cfg.General.Property,
		Rooms:    strconv.Itoa(cfg.General.Rooms),
		Theme:    cfg.Appearance.Theme,
	}
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	if err := vals.Apply(&cfg); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `kpiboard setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
