// Package metric formats hotel KPI values for display and parses them back.
package metric

import (
	"fmt"
	"strings"
)

// Domain classifies a metric for formatting and variation rules.
type Domain int

const (
	Other Domain = iota
	Revenue
	Expense
	Occupancy
	ADR
)

var domainNames = map[Domain]string{
	Other:     "other",
	Revenue:   "revenue",
	Expense:   "expense",
	Occupancy: "occupancy",
	ADR:       "adr",
}

func (d Domain) String() string {
	if name, ok := domainNames[d]; ok {
		return name
	}
	return "other"
}

// ParseDomain returns the domain with the given name (case-insensitive).
func ParseDomain(s string) (Domain, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range domainNames {
		if name == s {
			return d, true
		}
	}
	return Other, false
}

// MarshalText implements encoding.TextMarshaler.
func (d Domain) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Domain) UnmarshalText(b []byte) error {
	parsed, ok := ParseDomain(string(b))
	if !ok {
		return fmt.Errorf("unknown metric domain %q", string(b))
	}
	*d = parsed
	return nil
}

// DomainFromTitle infers a domain from a display title. Only used when
// importing titled fixtures; everything else passes a Domain explicitly.
func DomainFromTitle(title string) Domain {
	switch {
	case strings.Contains(title, "Revenue"):
		return Revenue
	case strings.Contains(title, "Expenses"):
		return Expense
	case strings.Contains(title, "Occupancy"), strings.Contains(title, "%"):
		return Occupancy
	case strings.Contains(title, "ADR"), strings.Contains(title, "per Room"):
		return ADR
	default:
		return Other
	}
}
