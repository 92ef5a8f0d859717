package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/kpiboard/internal/cli"

	"github.com/spf13/cobra"
)

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "List, lock or unlock accounting months",
}

var periodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known months and their lock state",
	Args:  cobra.NoArgs,
	RunE:  runPeriodList,
}

var periodLockCmd = &cobra.Command{
	Use:   "lock [YYYY-MM]",
	Short: "Lock a month (default: current month)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setPeriodLock(args, true)
	},
}

var periodUnlockCmd = &cobra.Command{
	Use:   "unlock [YYYY-MM]",
	Short: "Unlock a month (default: current month)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setPeriodLock(args, false)
	},
}

func init() {
	periodCmd.AddCommand(periodListCmd, periodLockCmd, periodUnlockCmd)
	rootCmd.AddCommand(periodCmd)
}

func runPeriodList(_ *cobra.Command, _ []string) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	st, err := openStore(loadConfig(log), log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	periods, err := st.Periods()
	if err != nil {
		return fmt.Errorf("loading periods: %w", err)
	}
	if len(periods) == 0 {
		fmt.Println("\n  No periods found.")
		return nil
	}

	rows := make([][]string, 0, len(periods))
	for _, p := range periods {
		state, since := "open", ""
		if p.Locked {
			state = cli.LockBadge()
			if !p.LockedAt.IsZero() {
				since = p.LockedAt.Local().Format(time.DateTime)
			}
		}
		rows = append(rows, []string{p.Month, state, since})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Accounting Periods",
		Headers: []string{"Month", "State", "Locked At"},
		Rows:    rows,
	}))
	return nil
}

func setPeriodLock(args []string, locked bool) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	if _, err := asOf(); err != nil {
		return err
	}

	month := nowFunc()().Format("2006-01")
	if len(args) == 1 {
		month = args[0]
	}

	st, err := openStore(loadConfig(log), log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.SetLocked(month, locked, time.Now()); err != nil {
		return fmt.Errorf("updating %s: %w", month, err)
	}

	verb := "Unlocked"
	if locked {
		verb = "Locked"
	}
	fmt.Printf("  %s %s\n", verb, month)
	return nil
}
