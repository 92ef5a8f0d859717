package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kpiboard/internal/sparkline"
	"github.com/theirongolddev/kpiboard/internal/tui/theme"
)

var eighths = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders l as a filled block chart of width cells by rows lines.
// The plot spans the full logical canvas so a cell column maps straight to
// a logical x. hovered is the hovered index or -1; its column is
// highlighted as the guide.
func Sparkline(l sparkline.Layout, hovered, width, rows int) string {
	if width <= 0 || rows <= 0 {
		return ""
	}
	t := theme.Active
	pal := l.Palette()

	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Stroke)).Background(t.Surface)
	guideStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Stroke)).Background(t.SurfaceHover)
	markStyle := lineStyle.Bold(true)

	guideCol := -1
	if hovered >= 0 && hovered < len(l.Points) {
		guideCol = ColumnAt(l.Points[hovered].X, width)
	}
	yesterdayCol := -1
	for _, p := range l.Points {
		if p.IsYesterday {
			yesterdayCol = ColumnAt(p.X, width)
		}
	}

	levels := rows * len(eighths)
	heights := make([]int, width)
	for c := range heights {
		x := (float64(c) + 0.5) / float64(width) * sparkline.Width
		frac := (sparkline.Height - sparkline.Padding - interpolateY(l.Points, x)) / sparkline.PlotHeight
		heights[c] = int(math.Round(min(max(frac, 0), 1)*float64(levels-1))) + 1
	}

	out := make([]string, rows)
	for r := range out {
		base := (rows - 1 - r) * len(eighths)
		var b strings.Builder
		for c, h := range heights {
			n := h - base
			cell := " "
			switch {
			case n >= len(eighths):
				cell = "█"
			case n > 0:
				cell = string(eighths[n-1])
			}

			style := lineStyle
			switch c {
			case guideCol:
				style = guideStyle
			case yesterdayCol:
				style = markStyle
			}
			b.WriteString(style.Render(cell))
		}
		out[r] = b.String()
	}
	return strings.Join(out, "\n")
}

// ColumnAt maps a logical x to one of width cell columns.
func ColumnAt(x float64, width int) int {
	if width <= 0 {
		return 0
	}
	c := int(x / sparkline.Width * float64(width))
	return min(max(c, 0), width-1)
}

// interpolateY returns the line's y at logical x.
func interpolateY(points []sparkline.Point, x float64) float64 {
	if len(points) == 0 {
		return sparkline.Height / 2
	}
	if x <= points[0].X {
		return points[0].Y
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if x <= b.X {
			if b.X == a.X {
				return b.Y
			}
			return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)
		}
	}
	return points[len(points)-1].Y
}
