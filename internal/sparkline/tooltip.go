package sparkline

import (
	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/pickup"
)

// TooltipMargin is the screen margin kept around a tooltip, in pixels.
const TooltipMargin = 10.0

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is a placed box. X and Y are the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// PlaceTooltip positions a box of the given size next to anchor while
// keeping it inside viewport. A box that would cross the right edge shifts
// left; one that would cross the bottom flips above the anchor. The margin is
// enforced on every edge last.
func PlaceTooltip(anchor Vec, size Size, viewport Size, margin float64) Rect {
	x := anchor.X + margin
	y := anchor.Y + margin

	if x+size.W > viewport.W-margin {
		x = viewport.W - size.W - margin
	}
	if y+size.H > viewport.H-margin {
		y = anchor.Y - size.H - margin
	}

	x = max(x, margin)
	y = max(y, margin)
	return Rect{X: x, Y: y, W: size.W, H: size.H}
}

// Comparison is one comparison row of a tooltip.
type Comparison struct {
	Label     string      `json:"label"`
	Value     float64     `json:"value"`
	Formatted string      `json:"formatted"`
	Delta     float64     `json:"delta"`
	DeltaText string      `json:"delta_text"`
	Tone      metric.Tone `json:"tone"`
}

// Tooltip is the content shown for a hovered point.
type Tooltip struct {
	Date        string        `json:"date"`
	DayName     string        `json:"day_name"`
	IsYesterday bool          `json:"is_yesterday"`
	Current     float64       `json:"current"`
	Formatted   string        `json:"formatted"`
	Comparisons [3]Comparison `json:"comparisons"`
}

// TooltipFor builds tooltip content for one day of a series.
func TooltipFor(p pickup.DailyPoint, d metric.Domain, isExpense bool) Tooltip {
	return Tooltip{
		Date:        p.Date,
		DayName:     p.DayName,
		IsYesterday: p.IsYesterday,
		Current:     p.Current,
		Formatted:   metric.Format(d, p.Current),
		Comparisons: [3]Comparison{
			compare("Prior", p.Current, p.Prior, d, isExpense),
			compare("Budget", p.Current, p.Budget, d, isExpense),
			compare("Forecast", p.Current, p.Forecast, d, isExpense),
		},
	}
}

func compare(label string, current, comparison float64, d metric.Domain, isExpense bool) Comparison {
	delta := metric.PercentDelta(current, comparison)
	return Comparison{
		Label:     label,
		Value:     comparison,
		Formatted: metric.Format(d, comparison),
		Delta:     delta,
		DeltaText: metric.FormatPercent(delta, true),
		Tone:      metric.ToneFor(delta, isExpense),
	}
}
