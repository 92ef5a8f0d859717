// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/model"
	"github.com/theirongolddev/kpiboard/internal/pickup"
)

// FormatBadge renders a comparison as a signed percentage with a direction
// arrow, e.g. "+6.7% ▲".
func FormatBadge(c model.Comparison) string {
	arrow := "▲"
	if c.Percentage < 0 {
		arrow = "▼"
	}
	return metric.FormatPercent(c.Percentage, true) + " " + arrow
}

// StyleBadge is FormatBadge colored by the comparison tone.
func StyleBadge(c model.Comparison) string {
	return toneStyle(c.Type).Render(FormatBadge(c))
}

// FormatDay renders a series day label, e.g. "Mon 03-02".
func FormatDay(p pickup.DailyPoint) string {
	label := p.DayName
	if len(p.Date) == len("2006-01-02") {
		label += " " + p.Date[5:]
	}
	return label
}

// FormatPickup renders a day-over-day change with an explicit sign.
func FormatPickup(d metric.Domain, delta float64) string {
	if delta > 0 {
		return "+" + metric.Format(d, delta)
	}
	return metric.Format(d, delta)
}

// FormatProgress renders budget progress as "NN% of budget".
func FormatProgress(pct float64) string {
	return fmt.Sprintf("%.0f%% of budget", pct)
}
