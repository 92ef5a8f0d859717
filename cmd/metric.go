package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/model"
	"github.com/theirongolddev/kpiboard/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagMetricTitle     string
	flagMetricDomain    string
	flagMetricExpense   bool
	flagMetricPeriod    string
	flagMetricCurrent   float64
	flagMetricPrior     float64
	flagMetricBudget    float64
	flagMetricForecast  float64
	flagMetricOTB       float64
	flagMetricYesterday float64
)

var metricCmd = &cobra.Command{
	Use:   "metric",
	Short: "Edit stored metrics (rejected in locked months)",
}

var metricSetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Create a metric or update the given fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetricSet,
}

var metricDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a metric",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetricDelete,
}

func init() {
	f := metricSetCmd.Flags()
	f.StringVar(&flagMetricTitle, "title", "", "Display title (required for new metrics)")
	f.StringVar(&flagMetricDomain, "domain", "", "revenue, expense, occupancy, adr or other (default from title)")
	f.BoolVar(&flagMetricExpense, "expense", false, "Lower is better")
	f.StringVar(&flagMetricPeriod, "period", "", "Accounting month YYYY-MM (default: current month)")
	f.Float64Var(&flagMetricCurrent, "current", 0, "Period-to-date actual")
	f.Float64Var(&flagMetricPrior, "prior", 0, "Prior period value")
	f.Float64Var(&flagMetricBudget, "budget", 0, "Budget value")
	f.Float64Var(&flagMetricForecast, "forecast", 0, "Forecast value")
	f.Float64Var(&flagMetricOTB, "otb", 0, "On-the-books value")
	f.Float64Var(&flagMetricYesterday, "yesterday", 0, "Yesterday's pickup reference value")

	metricCmd.AddCommand(metricSetCmd, metricDeleteCmd)
	rootCmd.AddCommand(metricCmd)
}

func runMetricSet(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	st, err := openStore(loadConfig(log), log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	key := args[0]
	m, err := st.Metric(key)
	isNew := errors.Is(err, store.ErrNotFound)
	if err != nil && !isNew {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if isNew {
		if flagMetricTitle == "" {
			return fmt.Errorf("new metric %s needs --title", key)
		}
		m = model.Metric{Key: key, Period: nowFunc()().Format("2006-01")}
	}

	if err := applyMetricFlags(cmd, &m); err != nil {
		return err
	}
	if err := st.SaveMetric(m); err != nil {
		return err
	}

	verb := "Updated"
	if isNew {
		verb = "Created"
	}
	fmt.Printf("  %s %s (%s, %s)\n", verb, key, m.Domain, m.Period)
	return nil
}

// applyMetricFlags copies the flags the user set onto m.
func applyMetricFlags(cmd *cobra.Command, m *model.Metric) error {
	set := cmd.Flags().Changed

	if set("title") {
		m.Title = flagMetricTitle
	}
	switch {
	case set("domain"):
		d, ok := metric.ParseDomain(flagMetricDomain)
		if !ok {
			return fmt.Errorf("unknown domain %q", flagMetricDomain)
		}
		m.Domain = d
	case set("title"):
		m.Domain = metric.DomainFromTitle(m.Title)
	}
	if set("expense") {
		m.IsExpense = flagMetricExpense
	} else if set("domain") || set("title") {
		m.IsExpense = m.Domain == metric.Expense
	}
	if set("period") {
		if _, err := time.Parse("2006-01", flagMetricPeriod); err != nil {
			return fmt.Errorf("invalid --period %q (want YYYY-MM)", flagMetricPeriod)
		}
		m.Period = flagMetricPeriod
	}

	for _, f := range []struct {
		name string
		dst  *float64
		v    float64
	}{
		{"current", &m.Current, flagMetricCurrent},
		{"prior", &m.Prior, flagMetricPrior},
		{"budget", &m.Budget, flagMetricBudget},
		{"forecast", &m.Forecast, flagMetricForecast},
		{"otb", &m.OTB, flagMetricOTB},
		{"yesterday", &m.Yesterday, flagMetricYesterday},
	} {
		if set(f.name) {
			*f.dst = f.v
		}
	}
	return nil
}

func runMetricDelete(_ *cobra.Command, args []string) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	st, err := openStore(loadConfig(log), log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.DeleteMetric(args[0]); err != nil {
		return err
	}
	fmt.Printf("  Deleted %s\n", args[0])
	return nil
}
