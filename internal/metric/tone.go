package metric

import "fmt"

// Tone is the good/bad reading of a signed value.
type Tone int

const (
	Good Tone = iota
	Bad
)

func (t Tone) String() string {
	if t == Bad {
		return "bad"
	}
	return "good"
}

// MarshalText implements encoding.TextMarshaler.
func (t Tone) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tone) UnmarshalText(b []byte) error {
	switch string(b) {
	case "good":
		*t = Good
	case "bad":
		*t = Bad
	default:
		return fmt.Errorf("unknown tone %q", string(b))
	}
	return nil
}

// ToneFor reads a signed value. Growth is good for revenue-like metrics;
// for expenses the test is inverted and shrinkage (or no change) is good.
func ToneFor(value float64, isExpense bool) Tone {
	if isExpense {
		if value <= 0 {
			return Good
		}
		return Bad
	}
	if value >= 0 {
		return Good
	}
	return Bad
}

// PercentDelta returns ((current-comparison)/comparison)*100, or 0 when
// comparison is 0.
func PercentDelta(current, comparison float64) float64 {
	if comparison == 0 {
		return 0
	}
	return (current - comparison) / comparison * 100
}
