package sparkline

import (
	"testing"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/pickup"
)

func TestPlaceTooltip(t *testing.T) {
	viewport := Size{W: 800, H: 600}
	size := Size{W: 160, H: 90}

	tests := []struct {
		name   string
		anchor Vec
		want   Rect
	}{
		{"open space", Vec{X: 100, Y: 100}, Rect{X: 110, Y: 110, W: 160, H: 90}},
		{"right edge shifts left", Vec{X: 790, Y: 100}, Rect{X: 630, Y: 110, W: 160, H: 90}},
		{"bottom edge flips above", Vec{X: 100, Y: 590}, Rect{X: 110, Y: 490, W: 160, H: 90}},
		{"corner", Vec{X: 795, Y: 595}, Rect{X: 630, Y: 495, W: 160, H: 90}},
		{"top-left minimum margin", Vec{X: -30, Y: -30}, Rect{X: 10, Y: 10, W: 160, H: 90}},
	}
	for _, tt := range tests {
		got := PlaceTooltip(tt.anchor, size, viewport, TooltipMargin)
		if got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestPlaceTooltip_NeverCrossesRightEdge(t *testing.T) {
	viewport := Size{W: 1024, H: 768}
	size := Size{W: 220, H: 120}
	for x := 0.0; x <= viewport.W; x += 7 {
		r := PlaceTooltip(Vec{X: x, Y: 300}, size, viewport, TooltipMargin)
		if r.Right() > viewport.W-TooltipMargin {
			t.Fatalf("anchor x=%v: right edge %v > %v", x, r.Right(), viewport.W-TooltipMargin)
		}
		if r.X < TooltipMargin || r.Y < TooltipMargin {
			t.Fatalf("anchor x=%v: %+v violates minimum margin", x, r)
		}
	}
}

func TestPlaceTooltip_CellMargin(t *testing.T) {
	r := PlaceTooltip(Vec{X: 78, Y: 22}, Size{W: 20, H: 6}, Size{W: 80, H: 24}, 1)
	if r.Right() > 79 || r.Y != 15 {
		t.Errorf("cell placement = %+v", r)
	}
}

func TestTooltipFor_ExpenseTones(t *testing.T) {
	p := pickup.DailyPoint{Current: 90, Prior: 100, Budget: 80, Forecast: 90}
	tip := TooltipFor(p, metric.Expense, true)

	if tip.Comparisons[0].Tone != metric.Good {
		t.Errorf("expense below prior should be good: %+v", tip.Comparisons[0])
	}
	if tip.Comparisons[1].Tone != metric.Bad {
		t.Errorf("expense above budget should be bad: %+v", tip.Comparisons[1])
	}
	if tip.Comparisons[2].Tone != metric.Good {
		t.Errorf("expense on forecast should be good: %+v", tip.Comparisons[2])
	}
	if tip.Comparisons[1].DeltaText != "+12.5%" {
		t.Errorf("budget delta text = %q, want +12.5%%", tip.Comparisons[1].DeltaText)
	}
}
