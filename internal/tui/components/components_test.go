package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/model"
	"github.com/theirongolddev/kpiboard/internal/pickup"
	"github.com/theirongolddev/kpiboard/internal/pipeline"
	"github.com/theirongolddev/kpiboard/internal/sparkline"
	"github.com/theirongolddev/kpiboard/internal/tui/theme"
)

func init() {
	// Plain output keeps cell assertions readable.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func flatLayout() sparkline.Layout {
	var s pickup.Series
	for i := range s {
		s[i].Current = 500
		s[i].IsYesterday = i == pickup.YesterdayIndex
	}
	return sparkline.Compute(s, false)
}

func testView() pipeline.View {
	return pipeline.NewView(pipeline.BuildCard(model.Metric{
		Key: "revenue", Title: "Total Revenue", Domain: metric.Revenue,
		Current: 5_775_000, Prior: 5_410_000, Budget: 6_200_000, Forecast: 5_900_000,
	}))
}

func TestLayoutRowSumsExactly(t *testing.T) {
	for _, total := range []int{80, 117, 120, 181} {
		for n := 1; n <= 5; n++ {
			sum := 0
			for _, w := range LayoutRow(total, n) {
				sum += w
			}
			if sum != total {
				t.Errorf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("n=0 should return nil")
	}
}

func TestKPICardGeometry(t *testing.T) {
	theme.SetActive("flexoki-dark")

	const outer = 30
	v := testView()
	spark := Sparkline(flatLayout(), -1, CardInnerWidth(outer), SparkRows)
	card := KPICard(v, spark, false, outer)

	lines := strings.Split(card, "\n")
	if len(lines) != CardHeight {
		t.Fatalf("card height = %d, want %d:\n%s", len(lines), CardHeight, card)
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != outer {
			t.Errorf("line %d width = %d, want %d: %q", i, w, outer, l)
		}
	}
	if !strings.Contains(lines[1], "Total Revenue") || !strings.Contains(lines[2], "$5.775m") {
		t.Errorf("header lines = %q / %q", lines[1], lines[2])
	}
	if !strings.Contains(lines[3], "vs Prior") || !strings.Contains(lines[3], "+6.7%") {
		t.Errorf("prior badge line = %q", lines[3])
	}

	sx, sy := SparkOrigin()
	row := []rune(ansi.Strip(lines[sy+1]))
	if string(row[sx:sx+3]) != "▅▅▅" {
		t.Errorf("sparkline middle row at origin = %q", string(row[sx:sx+3]))
	}
}

func TestKPICardLockedBadge(t *testing.T) {
	v := testView()
	v.Locked = true
	card := KPICard(v, "", false, 34)
	if !strings.Contains(strings.Split(card, "\n")[1], "locked") {
		t.Errorf("locked badge missing:\n%s", card)
	}
}

func TestKPICardSelectionChangesBorder(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	v := testView()
	if KPICard(v, "", true, 30) == KPICard(v, "", false, 30) {
		t.Error("selected card should render a different border color")
	}
}

func TestSparklineFlatFillsToMiddle(t *testing.T) {
	got := Sparkline(flatLayout(), -1, 5, 3)
	want := "     \n▅▅▅▅▅\n█████"
	if got != want {
		t.Errorf("Sparkline = %q, want %q", got, want)
	}
	if Sparkline(flatLayout(), -1, 0, 3) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestColumnAt(t *testing.T) {
	tests := []struct {
		x     float64
		width int
		want  int
	}{
		{0, 20, 0},
		{3, 20, 0},
		{50, 20, 10},
		{97, 20, 19},
		{100, 20, 19},
		{-5, 20, 0},
	}
	for _, tt := range tests {
		if got := ColumnAt(tt.x, tt.width); got != tt.want {
			t.Errorf("ColumnAt(%v, %d) = %d, want %d", tt.x, tt.width, got, tt.want)
		}
	}
}

func TestOverlay(t *testing.T) {
	base := "aaaaa\nbbbbb\nccccc"
	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"inside", 1, 1, "aaaaa\nbXYbb\ncZWcc"},
		{"clipped bottom", 3, 2, "aaaaa\nbbbbb\ncccXY"},
		{"past line end", 6, 0, "aaaaa XY\nbbbbb ZW\nccccc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlay(base, "XY\nZW", tt.x, tt.y); got != tt.want {
				t.Errorf("Overlay = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTooltipContent(t *testing.T) {
	p := pickup.DailyPoint{Date: "2026-03-07", DayName: "Sat", IsYesterday: true,
		Current: 38_000, Prior: 36_000, Budget: 40_000, Forecast: 38_000}
	box := Tooltip(sparkline.TooltipFor(p, metric.Revenue, false))

	for _, want := range []string{"Sat 2026-03-07 · yesterday", "Current  $38k", "Prior    $36k", "+5.6%", "-5.0%", "0.0%"} {
		if !strings.Contains(box, want) {
			t.Errorf("tooltip missing %q:\n%s", want, box)
		}
	}
}
