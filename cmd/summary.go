package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/kpiboard/internal/cli"
	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "All KPI cards with comparison badges and pickup",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
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

	cards, err := loadCards(st)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Println("\n  No metrics found.")
		fmt.Printf("  The store at %s is empty.\n", dbPath(cfg))
		return nil
	}

	rows := make([][]string, 0, len(cards)+2)
	lastDomain := cards[0].Domain
	for _, v := range pipeline.NewViews(cards) {
		if v.Card.Domain != lastDomain {
			rows = append(rows, []string{"---"})
			lastDomain = v.Card.Domain
		}

		s := gens.For(v.Key).Generate(v.Card.Domain, v.Card.Yesterday, v.Card.IsExpense)
		tone := metric.ToneFor(s.Pickup(), v.Card.IsExpense)

		label := v.Label
		if v.Locked {
			label += " " + cli.LockBadge()
		}
		rows = append(rows, []string{
			label,
			v.Value,
			cli.StyleBadge(v.Card.VsPrior),
			cli.StyleBadge(v.Card.VsBudget),
			cli.StyleBadge(v.Card.VsForecast),
			cli.FormatProgress(v.Progress),
			cli.StyleTone(tone, cli.RenderSparkline(s.Currents())),
		})
	}

	title := cfg.General.Property
	if title == "" {
		title = "KPI SUMMARY"
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", title, cards[0].Period)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value", "vs Prior", "vs Budget", "vs Forecast", "Progress", "Pickup"},
		Rows:    rows,
	}))

	if gens.Seed == nil {
		fmt.Fprintf(os.Stderr, "\n  Pickup series are random; pass --seed for repeatable output\n")
	}
	return nil
}
