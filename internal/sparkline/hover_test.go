package sparkline

import (
	"testing"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/pickup"
)

func TestIndexAt_PointPositions(t *testing.T) {
	n := pickup.SeriesLen
	for i := 0; i < n; i++ {
		x := XAt(i, n)
		if got := IndexAt(x, n); got != i {
			t.Errorf("IndexAt(%v) = %d, want %d", x, got, i)
		}
		// Idempotent: mapping the point back to its own x lands on it again.
		if again := IndexAt(XAt(IndexAt(x, n), n), n); again != i {
			t.Errorf("IndexAt not idempotent at %d: %d", i, again)
		}
	}
}

func TestIndexAt_MonotonicAndClamped(t *testing.T) {
	n := pickup.SeriesLen
	prev := 0
	for x := -20.0; x <= Width+20; x += 0.25 {
		got := IndexAt(x, n)
		if got < prev {
			t.Fatalf("IndexAt(%v) = %d after %d: not monotonic", x, got, prev)
		}
		if got < 0 || got > n-1 {
			t.Fatalf("IndexAt(%v) = %d out of range", x, got)
		}
		prev = got
	}
	if IndexAt(-500, n) != 0 || IndexAt(500, n) != n-1 {
		t.Error("out-of-canvas positions should clamp to the ends")
	}
	if IndexAt(42, 1) != 0 {
		t.Error("single point should always be index 0")
	}
}

func TestToLogical(t *testing.T) {
	if got := ToLogical(150, 300); got != 50 {
		t.Errorf("ToLogical(150, 300) = %v, want 50", got)
	}
	if got := ToLogical(10, 0); got != 0 {
		t.Errorf("ToLogical with zero width = %v, want 0", got)
	}
}

func TestHover_Lifecycle(t *testing.T) {
	var h Hover
	if _, ok := h.Index(); ok {
		t.Fatal("zero Hover should be idle")
	}
	if h.Hovered() != -1 {
		t.Fatalf("Hovered() = %d, want -1", h.Hovered())
	}
	if _, ok := h.Guide(); ok {
		t.Fatal("idle hover should have no guide")
	}

	idx := h.Move(XAt(2, pickup.SeriesLen)+1, Vec{X: 120, Y: 40})
	if idx != 2 {
		t.Fatalf("Move index = %d, want 2", idx)
	}
	if got, ok := h.Index(); !ok || got != 2 {
		t.Fatalf("Index() = %d, %v", got, ok)
	}
	g, ok := h.Guide()
	if !ok || g.X != XAt(2, pickup.SeriesLen) || g.Top != Padding || g.Bottom != Height-Padding {
		t.Errorf("Guide() = %+v, %v", g, ok)
	}
	if h.Anchor() != (Vec{X: 120, Y: 40}) {
		t.Errorf("Anchor() = %+v", h.Anchor())
	}

	h.Leave()
	if h.Hovered() != -1 {
		t.Errorf("after Leave Hovered() = %d, want -1", h.Hovered())
	}
}

func TestHover_InstancesAreIndependent(t *testing.T) {
	var a, b Hover
	a.Move(Width, Vec{})
	if b.Hovered() != -1 {
		t.Fatal("moving one hover changed another")
	}
}

func TestHover_Tooltip(t *testing.T) {
	var s pickup.Series
	s[3] = pickup.DailyPoint{Date: "2026-10-10", DayName: "Sat", Current: 38_000, Prior: 40_000, Budget: 0, Forecast: 38_000}

	var h Hover
	if _, ok := h.Tooltip(s, metric.Revenue, false); ok {
		t.Fatal("idle hover should have no tooltip")
	}

	h.Move(XAt(3, pickup.SeriesLen), Vec{})
	tip, ok := h.Tooltip(s, metric.Revenue, false)
	if !ok {
		t.Fatal("expected tooltip")
	}
	if tip.Formatted != "$38k" || tip.Date != "2026-10-10" {
		t.Errorf("tooltip = %+v", tip)
	}

	prior := tip.Comparisons[0]
	if prior.Label != "Prior" || prior.Delta != -5 || prior.DeltaText != "-5.0%" || prior.Tone != metric.Bad {
		t.Errorf("prior comparison = %+v", prior)
	}
	budget := tip.Comparisons[1]
	if budget.Delta != 0 || budget.Tone != metric.Good {
		t.Errorf("zero budget comparison = %+v, want delta 0 and good", budget)
	}
	if tip.Comparisons[2].DeltaText != "0.0%" {
		t.Errorf("forecast delta text = %q", tip.Comparisons[2].DeltaText)
	}
}
