// Package pickup generates the seven-day pickup series behind each KPI card.
//
// The series stands in for a real daily feed: the caller supplies yesterday's
// value and every other figure is derived from it with bounded random ratios.
package pickup

import (
	"math"
	"time"

	"github.com/theirongolddev/kpiboard/internal/metric"
)

const (
	// SeriesLen is the number of days in a pickup series.
	SeriesLen = 7
	// YesterdayIndex is the position of yesterday's point; the last point is today.
	YesterdayIndex = SeriesLen - 2
)

// DailyPoint is one day of a pickup series.
type DailyPoint struct {
	Date        string  `json:"date"`
	DayName     string  `json:"day_name"`
	IsYesterday bool    `json:"is_yesterday"`
	Current     float64 `json:"current"`
	Prior       float64 `json:"prior"`
	Budget      float64 `json:"budget"`
	Forecast    float64 `json:"forecast"`
}

// Series is a pickup series ordered oldest to newest.
type Series [SeriesLen]DailyPoint

// Yesterday returns the point flagged as yesterday.
func (s Series) Yesterday() DailyPoint {
	return s[YesterdayIndex]
}

// Currents returns the current values in series order.
func (s Series) Currents() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Current
	}
	return out
}

// Pickup is yesterday's day-over-day change in the current value.
func (s Series) Pickup() float64 {
	return s[YesterdayIndex].Current - s[YesterdayIndex-1].Current
}

// Range is a closed sampling interval.
type Range struct {
	Lo, Hi float64
}

func (r Range) draw(src Source) float64 {
	return r.Lo + src.Float64()*(r.Hi-r.Lo)
}

// VariationRange returns the day-to-day swing allowed for a domain.
func VariationRange(d metric.Domain) Range {
	switch d {
	case metric.Revenue:
		return Range{0.8, 1.2}
	case metric.Occupancy:
		return Range{0.9, 1.1}
	case metric.Expense:
		return Range{0.85, 1.15}
	default:
		return Range{0.7, 1.3}
	}
}

// Ratios holds the sampling ranges for the comparison figures.
type Ratios struct {
	Prior    Range
	Budget   Range
	Forecast Range
}

// ComparisonRatios returns the ranges used to derive prior, budget and
// forecast from a day's current value. Expense metrics swing wider.
func ComparisonRatios(isExpense bool) Ratios {
	if isExpense {
		return Ratios{
			Prior:    Range{0.8, 1.05},
			Budget:   Range{0.85, 1.05},
			Forecast: Range{0.88, 1.06},
		}
	}
	return Ratios{
		Prior:    Range{0.85, 1.05},
		Budget:   Range{0.9, 1.05},
		Forecast: Range{0.92, 1.04},
	}
}

// Generator builds pickup series from a random source and a clock.
// A Generator is not safe for concurrent use.
type Generator struct {
	src Source
	now func() time.Time
}

// New returns a generator using src for ratios and now for the as-of date.
func New(src Source, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{src: src, now: now}
}

// WithAsOf returns a copy of g whose "today" is pinned to t.
func (g *Generator) WithAsOf(t time.Time) *Generator {
	return &Generator{src: g.src, now: func() time.Time { return t }}
}

// Generate builds the seven-day series ending today, with yesterday's
// current value equal to reference.
func (g *Generator) Generate(d metric.Domain, reference float64, isExpense bool) Series {
	today := g.now()
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	variation := VariationRange(d)
	ratios := ComparisonRatios(isExpense)

	var s Series
	for i := range s {
		day := base.AddDate(0, 0, i-(SeriesLen-1))
		p := DailyPoint{
			Date:        day.Format("2006-01-02"),
			DayName:     day.Format("Mon"),
			IsYesterday: i == YesterdayIndex,
		}

		if p.IsYesterday {
			p.Current = reference
		} else {
			p.Current = math.Round(reference * variation.draw(g.src))
		}
		p.Prior = math.Round(p.Current * ratios.Prior.draw(g.src))
		p.Budget = math.Round(p.Current * ratios.Budget.draw(g.src))
		p.Forecast = math.Round(p.Current * ratios.Forecast.draw(g.src))

		s[i] = p
	}
	return s
}
