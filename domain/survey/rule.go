package survey

import (
	"fmt"
	"sort"
)

// RuleKind names a cleaning rule group
type RuleKind string

const (
	RulePassThrough     RuleKind = "pass_through"
	RuleBMI             RuleKind = "bmi"
	RuleOrdinalSentinel RuleKind = "ordinal_sentinel"
	RulePoorHealthDays  RuleKind = "poor_health_days"
	RuleEmployment      RuleKind = "employment"
)

// Rule is one entry of the sentinel rule table. Cleaning checks, in order:
// missing input, recodes, missing codes, then the keep range.
type Rule struct {
	Kind RuleKind `json:"kind"`

	// Divisor applied to the raw survey value before cleaning. Zero means none.
	Scale float64 `json:"scale,omitempty"`

	// Codes that mean "unknown" or "refused".
	MissingCodes []float64 `json:"missing_codes,omitempty"`

	// Codes folded into another value.
	Recode map[float64]float64 `json:"-"`

	// When set, any value not recoded and not inside Keep becomes missing.
	Keep *Interval `json:"keep,omitempty"`
}

// The rule table. Adding a field means picking one of these, or adding a new entry.
var (
	PassThroughRule = Rule{Kind: RulePassThrough}

	// _BMI5 is stored as BMI*100; 777 and 999 are unknown/refused in either scale.
	BMIRule = Rule{
		Kind:         RuleBMI,
		Scale:        100,
		MissingCodes: []float64{7.77, 9.99, 777, 999},
	}

	// 7 = don't know, 9 = refused, 8 is folded into category 5.
	OrdinalSentinelRule = Rule{
		Kind:         RuleOrdinalSentinel,
		MissingCodes: []float64{7, 9},
		Recode:       map[float64]float64{8: 5},
	}

	// 88 = "none", so zero days. Everything outside 1..30 is unknown.
	PoorHealthDaysRule = Rule{
		Kind:   RulePoorHealthDays,
		Recode: map[float64]float64{88: 0},
		Keep:   &Interval{Min: 1, Max: 30},
	}

	EmploymentRule = Rule{
		Kind:         RuleEmployment,
		MissingCodes: []float64{9},
	}
)

// Clean maps one value through the rule. It is total and pure.
func (r Rule) Clean(v Value) Value {
	x, ok := v.Float64()
	if !ok {
		return Missing()
	}
	if to, ok := r.Recode[x]; ok {
		return Number(to)
	}
	if r.isMissingCode(x) {
		return Missing()
	}
	if r.Keep != nil && !r.Keep.Contains(x) {
		return Missing()
	}
	return v
}

// Reapply cleans a value that has already been cleaned. Recode targets are
// fixed points, so Reapply(Clean(v)) == Clean(v) for every rule.
func (r Rule) Reapply(v Value) Value {
	if x, ok := v.Float64(); ok && r.isRecodeTarget(x) {
		return v
	}
	return r.Clean(v)
}

// Rescale converts a raw survey value into the units the rule cleans in
func (r Rule) Rescale(v Value) Value {
	if r.Scale == 0 || r.Scale == 1 {
		return v
	}
	x, ok := v.Float64()
	if !ok {
		return v
	}
	return Number(x / r.Scale)
}

func (r Rule) isMissingCode(x float64) bool {
	for _, c := range r.MissingCodes {
		if x == c {
			return true
		}
	}
	return false
}

func (r Rule) isRecodeTarget(x float64) bool {
	for _, to := range r.Recode {
		if x == to {
			return true
		}
	}
	return false
}

func (r Rule) validate() error {
	switch r.Kind {
	case RulePassThrough, RuleBMI, RuleOrdinalSentinel, RulePoorHealthDays, RuleEmployment:
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
	if r.Scale < 0 {
		return fmt.Errorf("negative scale %g", r.Scale)
	}
	for from, to := range r.Recode {
		if r.isMissingCode(from) {
			return fmt.Errorf("code %g is both recoded and missing", from)
		}
		if r.isMissingCode(to) {
			return fmt.Errorf("code %g recodes into missing code %g", from, to)
		}
	}
	if r.Keep != nil && r.Keep.Min > r.Keep.Max {
		return fmt.Errorf("keep range [%g,%g] is empty", r.Keep.Min, r.Keep.Max)
	}
	return nil
}

// RecodePairs lists recodes in ascending source order
func (r Rule) RecodePairs() [][2]float64 {
	pairs := make([][2]float64, 0, len(r.Recode))
	for from, to := range r.Recode {
		pairs = append(pairs, [2]float64{from, to})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })
	return pairs
}
