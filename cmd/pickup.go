package cmd

import (
	"fmt"

	"github.com/theirongolddev/kpiboard/internal/cli"
	"github.com/theirongolddev/kpiboard/internal/metric"

	"github.com/spf13/cobra"
)

var pickupCmd = &cobra.Command{
	Use:   "pickup <key>",
	Short: "7-day pickup drill-down for one metric",
	Args:  cobra.ExactArgs(1),
	RunE:  runPickup,
}

func init() {
	rootCmd.AddCommand(pickupCmd)
}

func runPickup(_ *cobra.Command, args []string) error {
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

	rows := make([][]string, 0, len(s))
	for _, p := range s {
		day := cli.FormatDay(p)
		if p.IsYesterday {
			day += " *"
		}
		rows = append(rows, []string{
			day,
			metric.Format(c.Domain, p.Current),
			metric.Format(c.Domain, p.Prior),
			metric.Format(c.Domain, p.Budget),
			metric.Format(c.Domain, p.Forecast),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  PICKUP", c.Title)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Day", "Current", "Prior", "Budget", "Forecast"},
		Rows:    rows,
	}))

	tone := metric.ToneFor(s.Pickup(), c.IsExpense)
	fmt.Println()
	fmt.Printf("  Yesterday pickup: %s  %s\n",
		cli.StyleTone(tone, cli.FormatPickup(c.Domain, s.Pickup())),
		cli.StyleTone(tone, cli.RenderSparkline(s.Currents())))
	fmt.Printf("  * marks yesterday\n")
	return nil
}
