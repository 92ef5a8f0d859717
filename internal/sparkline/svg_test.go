package sparkline

import (
	"strings"
	"testing"

	"github.com/theirongolddev/kpiboard/internal/pickup"
)

func TestRenderSVG(t *testing.T) {
	l := Compute(seriesOf(1, 3, 2, 5, 4, 6, 5), false)

	out := RenderSVG(l, -1, SVGOptions{ID: "rev", Title: "Revenue & more"})
	for _, want := range []string{
		`viewBox="0 0 100 32"`,
		`<title>Revenue &amp; more</title>`,
		`id="rev-fill"`,
		`d="` + l.LinePath + `"`,
		`d="` + l.AreaPath + `"`,
		`fill="url(#rev-fill)"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "stroke-dasharray") {
		t.Error("idle sparkline should not draw a guide line")
	}
	if got := strings.Count(out, "<circle"); got != pickup.SeriesLen {
		t.Errorf("circles = %d, want %d", got, pickup.SeriesLen)
	}

	hovered := RenderSVG(l, 2, SVGOptions{ID: "rev"})
	if !strings.Contains(hovered, `stroke-dasharray="2,2"`) || !strings.Contains(hovered, `x1="34.33"`) {
		t.Errorf("hovered svg missing guide at x=34.33\n%s", hovered)
	}
}

func TestRenderSVG_UniqueIDs(t *testing.T) {
	l := Compute(seriesOf(1, 1, 1, 1, 1, 1, 1), false)
	a := RenderSVG(l, -1, SVGOptions{})
	b := RenderSVG(l, -1, SVGOptions{})
	if a == b {
		t.Error("two renders without an ID should not share gradient ids")
	}
}

func TestRenderSVG_PaletteByTone(t *testing.T) {
	tests := []struct {
		name       string
		series     pickup.Series
		isExpense  bool
		fill, line string
		otherFill  string
	}{
		{"rising revenue", seriesOf(1, 2, 3, 4, 5, 6, 7), false, GoodFill, GoodStroke, BadFill},
		{"falling revenue", seriesOf(7, 6, 5, 4, 3, 2, 1), false, BadFill, BadStroke, GoodFill},
		{"rising expense", seriesOf(1, 2, 3, 4, 5, 6, 7), true, BadFill, BadStroke, GoodFill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderSVG(Compute(tt.series, tt.isExpense), -1, SVGOptions{ID: "p"})
			if !strings.Contains(out, `stop-color="`+tt.fill+`"`) {
				t.Errorf("area gradient missing fill %q\n%s", tt.fill, out)
			}
			if !strings.Contains(out, `stroke="`+tt.line+`"`) {
				t.Errorf("line missing stroke %q\n%s", tt.line, out)
			}
			if strings.Contains(out, tt.otherFill) {
				t.Errorf("svg should not use %q\n%s", tt.otherFill, out)
			}
		})
	}
}
