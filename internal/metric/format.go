package metric

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)

	printer = message.NewPrinter(language.English)
)

// FormatCompact renders a magnitude with k/m suffixes.
// e.g., 999 -> "999", 1500 -> "2k", 5775000 -> "5.775m"
func FormatCompact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}

	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return decimal.NewFromFloat(v).Div(million).StringFixed(3) + "m"
	case abs >= 1_000:
		return strconv.FormatFloat(math.Round(v/1_000), 'f', 0, 64) + "k"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// FormatPercent renders v with one decimal and a percent sign. When signed
// is set, positive values get a leading "+".
func FormatPercent(v float64, signed bool) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	s := fmt.Sprintf("%.1f%%", v)
	if signed && v > 0 {
		return "+" + s
	}
	return s
}

// FormatADR renders a rate as dollars with grouping and two decimals.
func FormatADR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if v < 0 {
		return "-$" + printer.Sprintf("%.2f", -v)
	}
	return "$" + printer.Sprintf("%.2f", v)
}

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// Format renders v according to the display rules of d.
func Format(d Domain, v float64) string {
	switch d {
	case Revenue, Expense:
		if v < 0 {
			return "-$" + FormatCompact(-v)
		}
		return "$" + FormatCompact(v)
	case Occupancy:
		return FormatPercent(v, false)
	case ADR:
		return FormatADR(v)
	default:
		return FormatCompact(v)
	}
}

// ParseBadgeValue reads a formatted badge such as "$38k" or "2.125m" back
// into a number. Unparseable input yields 0.
func ParseBadgeValue(s string) float64 {
	cleaned := strings.ToLower(clean(s))

	mult := decimal.NewFromInt(1)
	switch {
	case strings.HasSuffix(cleaned, "k"):
		mult = thousand
		cleaned = strings.TrimSuffix(cleaned, "k")
	case strings.HasSuffix(cleaned, "m"):
		mult = million
		cleaned = strings.TrimSuffix(cleaned, "m")
	}

	d, ok := parseDecimal(cleaned)
	if !ok {
		return 0
	}
	return finite(d.Mul(mult).InexactFloat64())
}

// ParsePercent reads a percentage such as "+12.5%". Unparseable input yields 0.
func ParsePercent(s string) float64 {
	d, ok := parseDecimal(clean(s))
	if !ok {
		return 0
	}
	return finite(d.InexactFloat64())
}

// finite maps NaN and ±Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// clean drops currency symbols, grouping commas, percent signs and whitespace.
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), r == ',', r == '%', unicode.Is(unicode.Sc, r):
			return -1
		}
		return r
	}, s)
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
