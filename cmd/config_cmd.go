// Package cmd implements the kpiboard CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/kpiboard/internal/config"

	"github.com/spf13/cobra"
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
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Property: %s\n", cfg.General.Property)
	fmt.Printf("    Rooms:    %d\n", cfg.General.Rooms)
	fmt.Printf("    Database: %s\n", dbPath(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Pickup]")
	if s := seed(cfg); s != nil {
		fmt.Printf("    Seed: %d\n", *s)
	} else {
		fmt.Println("    Seed: random")
	}
	fmt.Println()

	fmt.Println("  Run `kpiboard setup` to reconfigure.")
	return nil
}
