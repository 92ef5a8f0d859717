package cmd

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// resetFlags restores every flag of c and its children to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with args against an isolated config dir.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func openDB(t *testing.T, path string) *store.Store {
	t.Helper()
	st, err := store.Open(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRootExecuteWithSeed(t *testing.T) {
	db := filepath.Join(t.TempDir(), "kpi.db")

	if err := execute(t, "--db", db, "--seed", "42", "--as-of", "2026-03-07"); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s := seed(loadConfig(zap.NewNop())); s == nil || *s != 42 {
		t.Errorf("seed after --seed 42 = %v", s)
	}

	if err := execute(t, "pickup", "revenue", "--db", db, "--seed", "42"); err != nil {
		t.Fatalf("pickup: %v", err)
	}
	if err := execute(t, "pickup", "nope", "--db", db); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("pickup unknown key: err = %v, want ErrNotFound", err)
	}
	if err := execute(t, "--db", db, "--as-of", "March"); err == nil {
		t.Error("expected error for malformed --as-of")
	}
}

func TestMetricSetCreatesAndUpdates(t *testing.T) {
	db := filepath.Join(t.TempDir(), "kpi.db")

	if err := execute(t, "metric", "set", "spa", "--db", db, "--as-of", "2026-03-07",
		"--title", "Spa Revenue", "--current", "42000", "--yesterday", "1500"); err != nil {
		t.Fatalf("metric set new: %v", err)
	}
	if err := execute(t, "metric", "set", "spa", "--db", db, "--budget", "50000"); err != nil {
		t.Fatalf("metric set update: %v", err)
	}

	m, err := openDB(t, db).Metric("spa")
	if err != nil {
		t.Fatal(err)
	}
	if m.Domain != metric.Revenue || m.IsExpense {
		t.Errorf("domain = %v expense = %v, want revenue from title", m.Domain, m.IsExpense)
	}
	if m.Period != "2026-03" || m.Current != 42_000 || m.Yesterday != 1_500 || m.Budget != 50_000 {
		t.Errorf("metric = %+v", m)
	}

	if err := execute(t, "metric", "set", "ghost", "--db", db); err == nil {
		t.Error("new metric without --title should fail")
	}
	if err := execute(t, "metric", "set", "spa", "--db", db, "--period", "March"); err == nil {
		t.Error("malformed --period should fail")
	}
	if err := execute(t, "metric", "set", "spa", "--db", db, "--domain", "weather"); err == nil {
		t.Error("unknown --domain should fail")
	}
}

func TestMetricEditsRejectedInLockedMonth(t *testing.T) {
	db := filepath.Join(t.TempDir(), "kpi.db")

	if err := execute(t, "metric", "set", "spa", "--db", db, "--as-of", "2026-03-07",
		"--title", "Spa Revenue", "--current", "42000"); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "period", "lock", "2026-03", "--db", db); err != nil {
		t.Fatalf("period lock: %v", err)
	}

	if err := execute(t, "metric", "set", "spa", "--db", db, "--current", "1"); !errors.Is(err, store.ErrLocked) {
		t.Errorf("set in locked month: err = %v, want ErrLocked", err)
	}
	if err := execute(t, "metric", "delete", "spa", "--db", db); !errors.Is(err, store.ErrLocked) {
		t.Errorf("delete in locked month: err = %v, want ErrLocked", err)
	}

	if err := execute(t, "period", "unlock", "2026-03", "--db", db); err != nil {
		t.Fatalf("period unlock: %v", err)
	}
	if err := execute(t, "metric", "delete", "spa", "--db", db); err != nil {
		t.Fatalf("delete after unlock: %v", err)
	}
	if _, err := openDB(t, db).Metric("spa"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("after delete err = %v, want ErrNotFound", err)
	}
}
