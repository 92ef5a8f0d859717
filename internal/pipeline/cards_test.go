package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/model"
)

func TestBuildCard(t *testing.T) {
	c := BuildCard(model.Metric{
		Key:      "revenue",
		Domain:   metric.Revenue,
		Current:  1_100,
		Prior:    1_000,
		Budget:   1_250,
		Forecast: 1_100,
	})

	if math.Abs(c.VsPrior.Percentage-10) > 1e-9 || c.VsPrior.Type != metric.Good {
		t.Errorf("VsPrior = %+v, want +10%% good", c.VsPrior)
	}
	if math.Abs(c.VsBudget.Percentage+12) > 1e-9 || c.VsBudget.Type != metric.Bad {
		t.Errorf("VsBudget = %+v, want -12%% bad", c.VsBudget)
	}
	if c.VsForecast.Percentage != 0 || c.VsForecast.Type != metric.Good {
		t.Errorf("VsForecast = %+v, want 0 good", c.VsForecast)
	}
	if c.Progress != 88 {
		t.Errorf("Progress = %v, want 88", c.Progress)
	}
}

func TestBuildCard_Expense(t *testing.T) {
	c := BuildCard(model.Metric{Domain: metric.Expense, IsExpense: true, Current: 900, Prior: 1_000, Budget: 800})
	if c.VsPrior.Type != metric.Good {
		t.Errorf("expense below prior should be good, got %s", c.VsPrior.Type)
	}
	if c.VsBudget.Type != metric.Bad {
		t.Errorf("expense above budget should be bad, got %s", c.VsBudget.Type)
	}
	if c.Progress != 100 {
		t.Errorf("Progress = %v, want clamp to 100", c.Progress)
	}
}

func TestBuildCard_ZeroReferences(t *testing.T) {
	c := BuildCard(model.Metric{Current: 100})
	for name, cmp := range map[string]model.Comparison{"prior": c.VsPrior, "budget": c.VsBudget, "forecast": c.VsForecast} {
		if cmp.Percentage != 0 || math.IsInf(cmp.Percentage, 0) || math.IsNaN(cmp.Percentage) {
			t.Errorf("%s percentage = %v, want 0", name, cmp.Percentage)
		}
		if cmp.Type != metric.Good {
			t.Errorf("%s type = %s, want good", name, cmp.Type)
		}
	}
	if c.Progress != 0 {
		t.Errorf("Progress = %v, want 0", c.Progress)
	}
}

func TestBuildCards_Locks(t *testing.T) {
	metrics := []model.Metric{
		{Key: "a", Period: "2026-09"},
		{Key: "b", Period: "2026-10"},
	}
	cards := BuildCards(metrics, []model.Period{{Month: "2026-09", Locked: true}})
	if !cards[0].Locked || cards[1].Locked {
		t.Errorf("locked = %v, %v; want true, false", cards[0].Locked, cards[1].Locked)
	}
}

func TestFilterAndFind(t *testing.T) {
	cards := BuildCards([]model.Metric{
		{Key: "revenue", Domain: metric.Revenue},
		{Key: "expenses", Domain: metric.Expense},
		{Key: "adr", Domain: metric.ADR},
	}, nil)

	if got := FilterByDomain(cards, metric.Revenue, metric.ADR); len(got) != 2 {
		t.Errorf("FilterByDomain len = %d, want 2", len(got))
	}
	if got := FilterByDomain(cards); len(got) != 3 {
		t.Errorf("FilterByDomain with no domains len = %d, want 3", len(got))
	}
	if c, ok := Find(cards, "ADR"); !ok || c.Key != "adr" {
		t.Errorf("Find(ADR) = %+v, %v", c, ok)
	}
	if _, ok := Find(cards, "missing"); ok {
		t.Error("Find(missing) should fail")
	}
}

func TestNewView(t *testing.T) {
	c := BuildCard(model.Metric{
		Key:       "payroll",
		Title:     "Payroll Expenses",
		Domain:    metric.Expense,
		IsExpense: true,
		Current:   1_100_000,
		Prior:     1_000_000,
		Budget:    1_100_000,
		Forecast:  1_250_000,
	})
	v := NewView(c)

	if v.Label != "Payroll Expenses" || v.Value != "$1.100m" {
		t.Errorf("view = %q %q", v.Label, v.Value)
	}
	want := [3]Badge{
		{Label: "vs Prior", Text: "+10.0%", Tone: metric.Bad},
		{Label: "vs Budget", Text: "0.0%", Tone: metric.Good},
		{Label: "vs Forecast", Text: "-12.0%", Tone: metric.Good},
	}
	if v.Badges != want {
		t.Errorf("badges = %+v, want %+v", v.Badges, want)
	}
	if v.Progress != 100 {
		t.Errorf("progress = %v, want 100", v.Progress)
	}
}
