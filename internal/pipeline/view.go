package pipeline

import (
	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/model"
)

// Badge is one rendered comparison of a card.
type Badge struct {
	Label string      `json:"label"`
	Text  string      `json:"text"`
	Tone  metric.Tone `json:"tone"`
}

// View is the display form of a card, shared by every surface.
type View struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Value    string     `json:"value"`
	Badges   [3]Badge   `json:"badges"`
	Progress float64    `json:"progress"`
	Locked   bool       `json:"locked"`
	Card     model.Card `json:"card"`
}

// NewView formats c for display.
func NewView(c model.Card) View {
	return View{
		Key:   c.Key,
		Label: c.Title,
		Value: metric.Format(c.Domain, c.Current),
		Badges: [3]Badge{
			badge("vs Prior", c.VsPrior),
			badge("vs Budget", c.VsBudget),
			badge("vs Forecast", c.VsForecast),
		},
		Progress: c.Progress,
		Locked:   c.Locked,
		Card:     c,
	}
}

// NewViews formats every card.
func NewViews(cards []model.Card) []View {
	views := make([]View, len(cards))
	for i, c := range cards {
		views[i] = NewView(c)
	}
	return views
}

func badge(label string, c model.Comparison) Badge {
	return Badge{Label: label, Text: metric.FormatPercent(c.Percentage, true), Tone: c.Type}
}
