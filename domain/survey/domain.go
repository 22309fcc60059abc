package survey

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Interval is a closed numeric range
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether x lies within [Min, Max]
func (i Interval) Contains(x float64) bool {
	return x >= i.Min && x <= i.Max
}

// Domain declares the raw values a survey instrument may emit for a field,
// sentinel codes included.
type Domain struct {
	Ranges  []Interval `json:"ranges,omitempty"`
	Codes   []float64  `json:"codes,omitempty"`
	Integer bool       `json:"integer"`
}

// CodeSet is a domain of discrete codes
func CodeSet(codes ...float64) Domain {
	return Domain{Codes: codes, Integer: true}
}

// IntRange is a domain of all integers in [min, max]
func IntRange(min, max float64) Domain {
	return Domain{Ranges: []Interval{{Min: min, Max: max}}, Integer: true}
}

// RealRange is a domain of all reals in [min, max]
func RealRange(min, max float64) Domain {
	return Domain{Ranges: []Interval{{Min: min, Max: max}}}
}

// With returns a copy of the domain extended by extra codes
func (d Domain) With(codes ...float64) Domain {
	out := Domain{
		Ranges:  append([]Interval(nil), d.Ranges...),
		Codes:   append(append([]float64(nil), d.Codes...), codes...),
		Integer: d.Integer,
	}
	return out
}

// IsEmpty reports whether the domain declares nothing
func (d Domain) IsEmpty() bool {
	return len(d.Ranges) == 0 && len(d.Codes) == 0
}

// Contains reports whether x is an admissible raw value
func (d Domain) Contains(x float64) bool {
	for _, c := range d.Codes {
		if x == c {
			return true
		}
	}
	if d.Integer && x != math.Trunc(x) {
		return false
	}
	for _, r := range d.Ranges {
		if r.Contains(x) {
			return true
		}
	}
	return false
}

func (d Domain) String() string {
	parts := make([]string, 0, len(d.Ranges)+1)
	for _, r := range d.Ranges {
		parts = append(parts, fmt.Sprintf("[%g,%g]", r.Min, r.Max))
	}
	if len(d.Codes) > 0 {
		codes := append([]float64(nil), d.Codes...)
		sort.Float64s(codes)
		strs := make([]string, len(codes))
		for i, c := range codes {
			strs[i] = fmt.Sprintf("%g", c)
		}
		parts = append(parts, "{"+strings.Join(strs, ",")+"}")
	}
	if len(parts) == 0 {
		return "{}"
	}
	return strings.Join(parts, " ∪ ")
}
