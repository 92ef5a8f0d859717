package sparkline

import (
	"math"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/pickup"
)

// Vec is a position in screen space.
type Vec struct {
	X, Y float64
}

// IndexAt maps a logical canvas x to the nearest of n point indices.
func IndexAt(x float64, n int) int {
	if n <= 1 {
		return 0
	}
	rel := math.Min(math.Max(x-Padding, 0), PlotWidth)
	idx := int(math.Round(rel / PlotWidth * float64(n-1)))
	return min(max(idx, 0), n-1)
}

// ToLogical rescales an offset within a canvas rendered renderedWidth wide
// into logical canvas units.
func ToLogical(offset, renderedWidth float64) float64 {
	if renderedWidth <= 0 {
		return 0
	}
	return offset / renderedWidth * Width
}

// Guide is the dashed vertical line drawn at the hovered point.
type Guide struct {
	X      float64
	Top    float64
	Bottom float64
}

// GuideAt returns the guide line for index i of a series.
func GuideAt(i int) Guide {
	return Guide{X: XAt(i, pickup.SeriesLen), Top: Padding, Bottom: Height - Padding}
}

// Hover is the pointer state of a single sparkline. The zero value is idle.
type Hover struct {
	active bool
	index  int
	anchor Vec
}

// Move records a pointer at logical canvas x and screen position anchor, and
// returns the hovered index.
func (h *Hover) Move(x float64, anchor Vec) int {
	h.active = true
	h.index = IndexAt(x, pickup.SeriesLen)
	h.anchor = anchor
	return h.index
}

// Leave clears the hover.
func (h *Hover) Leave() {
	*h = Hover{}
}

// Index returns the hovered index, if any.
func (h Hover) Index() (int, bool) {
	return h.index, h.active
}

// Hovered returns the hovered index or -1.
func (h Hover) Hovered() int {
	if !h.active {
		return -1
	}
	return h.index
}

// Anchor returns the last pointer position.
func (h Hover) Anchor() Vec {
	return h.anchor
}

// Guide returns the guide line for the hovered point.
func (h Hover) Guide() (Guide, bool) {
	if !h.active {
		return Guide{}, false
	}
	return GuideAt(h.index), true
}

// Tooltip builds the tooltip for the hovered point of s.
func (h Hover) Tooltip(s pickup.Series, d metric.Domain, isExpense bool) (Tooltip, bool) {
	if !h.active {
		return Tooltip{}, false
	}
	return TooltipFor(s[h.index], d, isExpense), true
}
