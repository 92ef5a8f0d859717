package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/kpiboard/internal/pickup"
	"github.com/theirongolddev/kpiboard/internal/sparkline"

	"github.com/spf13/cobra"
)

var (
	flagSparkOut   string
	flagSparkHover int
)

var sparklineCmd = &cobra.Command{
	Use:   "sparkline <key>",
	Short: "Write the pickup sparkline of one metric as SVG",
	Args:  cobra.ExactArgs(1),
	RunE:  runSparkline,
}

func init() {
	sparklineCmd.Flags().StringVarP(&flagSparkOut, "output", "o", "", "Write to file instead of stdout")
	sparklineCmd.Flags().IntVar(&flagSparkHover, "hover", -1, "Render point i (0-6) hovered")
	rootCmd.AddCommand(sparklineCmd)
}

func runSparkline(_ *cobra.Command, args []string) error {
	if flagSparkHover < -1 || flagSparkHover >= pickup.SeriesLen {
		return fmt.Errorf("invalid --hover %d (want 0-%d)", flagSparkHover, pickup.SeriesLen-1)
	}

	log := newLogger()
	defer func() { _ = log.Sync() }()

	cfg := loadConfig(log)
	gens, err := newFactory(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	c, err := findCard(st, args[0])
	if err != nil {
		return err
	}

	s := gens.For(c.Key).Generate(c.Domain, c.Yesterday, c.IsExpense)
	svg := sparkline.RenderSVG(sparkline.Compute(s, c.IsExpense), flagSparkHover, sparkline.SVGOptions{
		Title: c.Title + " pickup",
		ID:    "spark-" + c.Key,
	})

	if flagSparkOut == "" {
		fmt.Print(svg)
		return nil
	}
	if err := os.WriteFile(flagSparkOut, []byte(svg), 0o600); err != nil {
		return fmt.Errorf("writing sparkline: %w", err)
	}
	fmt.Fprintf(os.Stderr, "  Wrote %s\n", flagSparkOut)
	return nil
}
