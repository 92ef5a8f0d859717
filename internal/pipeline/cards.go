// Package pipeline turns raw metrics into dashboard cards.
package pipeline

import (
	"math"
	"strings"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/model"
)

// BuildCard computes the comparison badges and budget progress of m.
func BuildCard(m model.Metric) model.Card {
	return model.Card{
		Metric:     m,
		VsPrior:    compare(m.Current, m.Prior, m.IsExpense),
		VsBudget:   compare(m.Current, m.Budget, m.IsExpense),
		VsForecast: compare(m.Current, m.Forecast, m.IsExpense),
		Progress:   Progress(m.Current, m.Budget),
	}
}

// BuildCards builds a card per metric and marks cards in locked months.
func BuildCards(metrics []model.Metric, periods []model.Period) []model.Card {
	locked := make(map[string]bool, len(periods))
	for _, p := range periods {
		locked[p.Month] = p.Locked
	}

	cards := make([]model.Card, 0, len(metrics))
	for _, m := range metrics {
		c := BuildCard(m)
		c.Locked = locked[m.Period]
		cards = append(cards, c)
	}
	return cards
}

// Progress is current as a percentage of budget, clamped to 0-100.
func Progress(current, budget float64) float64 {
	if budget == 0 {
		return 0
	}
	return math.Min(math.Max(current/budget*100, 0), 100)
}

func compare(current, reference float64, isExpense bool) model.Comparison {
	pct := metric.PercentDelta(current, reference)
	return model.Comparison{
		Percentage: pct,
		Type:       metric.ToneFor(pct, isExpense),
	}
}

// FilterByDomain returns the cards of the given domains.
func FilterByDomain(cards []model.Card, domains ...metric.Domain) []model.Card {
	if len(domains) == 0 {
		return cards
	}
	want := make(map[metric.Domain]bool, len(domains))
	for _, d := range domains {
		want[d] = true
	}

	var out []model.Card
	for _, c := range cards {
		if want[c.Domain] {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the card with the given key (case-insensitive).
func Find(cards []model.Card, key string) (model.Card, bool) {
	for _, c := range cards {
		if strings.EqualFold(c.Key, key) {
			return c, true
		}
	}
	return model.Card{}, false
}
