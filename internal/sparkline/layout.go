// Package sparkline lays out a pickup series on a small fixed canvas: line
// and area paths, point markers, hover mapping and tooltip placement.
package sparkline

import (
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/pickup"
)

// Logical canvas, in SVG user units.
const (
	Width      = 100.0
	Height     = 32.0
	Padding    = 3.0
	PlotWidth  = Width - 2*Padding
	PlotHeight = Height - 2*Padding
)

// The two color pairs used for every sparkline and comparison badge.
const (
	GoodFill   = "rgba(16, 185, 129, 0.15)"
	GoodStroke = "#10B981"
	BadFill    = "rgba(239, 68, 68, 0.15)"
	BadStroke  = "#EF4444"
)

// Palette is a fill/stroke color pair.
type Palette struct {
	Fill   string
	Stroke string
}

// PaletteFor returns the color pair for a tone.
func PaletteFor(t metric.Tone) Palette {
	if t == metric.Bad {
		return Palette{Fill: BadFill, Stroke: BadStroke}
	}
	return Palette{Fill: GoodFill, Stroke: GoodStroke}
}

// Point is a plotted series value.
type Point struct {
	Index       int     `json:"index"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Value       float64 `json:"value"`
	IsYesterday bool    `json:"is_yesterday"`
}

// Layout is the computed geometry of one sparkline.
type Layout struct {
	LinePath string      `json:"line_path"`
	AreaPath string      `json:"area_path"`
	Points   []Point     `json:"points"`
	Tone     metric.Tone `json:"tone"`
	Flat     bool        `json:"flat"`
}

// Palette returns the layout's color pair.
func (l Layout) Palette() Palette {
	return PaletteFor(l.Tone)
}

// Compute lays out the current values of s. The tone is not the sign of the
// current values: it is ToneFor(yesterday's current minus the day before's),
// so a rising revenue series is Good and a rising expense series is Bad.
func Compute(s pickup.Series, isExpense bool) Layout {
	l := layoutValues(s.Currents())
	for i := range l.Points {
		l.Points[i].IsYesterday = s[i].IsYesterday
	}
	l.Tone = metric.ToneFor(s.Pickup(), isExpense)
	return l
}

// XAt returns the x coordinate of index i among n evenly spaced points.
func XAt(i, n int) float64 {
	if n <= 1 {
		return Padding
	}
	return Padding + float64(i)/float64(n-1)*PlotWidth
}

func layoutValues(values []float64) Layout {
	n := len(values)
	if n == 0 {
		return Layout{Flat: true}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	flat := hi == lo

	points := make([]Point, n)
	for i, v := range values {
		y := Padding + PlotHeight/2
		if !flat {
			norm := (v - lo) / (hi - lo)
			y = Padding + PlotHeight - norm*PlotHeight
		}
		points[i] = Point{Index: i, X: XAt(i, n), Y: y, Value: v}
	}

	var line strings.Builder
	for i, p := range points {
		if i == 0 {
			line.WriteString("M")
		} else {
			line.WriteString(" L")
		}
		line.WriteString(coord(p.X))
		line.WriteByte(',')
		line.WriteString(coord(p.Y))
	}

	bottom := coord(Height - Padding)
	area := line.String() +
		" L" + coord(points[n-1].X) + "," + bottom +
		" L" + coord(points[0].X) + "," + bottom + " Z"

	return Layout{
		LinePath: line.String(),
		AreaPath: area,
		Points:   points,
		Flat:     flat,
	}
}

// coord renders a coordinate with at most two decimals.
func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Marker is the drawn size and opacity of a point.
type Marker struct {
	Radius  float64
	Opacity float64
}

const (
	yesterdayRadius = 2.5
	hoverRadius     = 2
	baseRadius      = 1.5
	baseOpacity     = 0.6
)

// MarkerFor sizes p given the hovered index (-1 when nothing is hovered).
// Yesterday always wins.
func MarkerFor(p Point, hovered int) Marker {
	switch {
	case p.IsYesterday:
		return Marker{Radius: yesterdayRadius, Opacity: 1}
	case p.Index == hovered:
		return Marker{Radius: hoverRadius, Opacity: 1}
	default:
		return Marker{Radius: baseRadius, Opacity: baseOpacity}
	}
}
