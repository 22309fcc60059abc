package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinalSentinelRule(t *testing.T) {
	tests := []struct {
		in   Value
		want Value
	}{
		{Number(7), Missing()},
		{Number(8), Number(5)},
		{Number(9), Missing()},
		{Number(1), Number(1)},
		{Number(5), Number(5)},
		{Number(6), Number(6)},
		{Number(-3), Number(-3)},
		{Number(77), Number(77)},
		{Missing(), Missing()},
	}
	for _, tt := range tests {
		got := OrdinalSentinelRule.Clean(tt.in)
		assert.Truef(t, got.Equal(tt.want), "clean(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestPoorHealthDaysRule(t *testing.T) {
	tests := []struct {
		in   Value
		want Value
	}{
		{Number(88), Number(0)},
		{Number(1), Number(1)},
		{Number(15), Number(15)},
		{Number(30), Number(30)},
		{Number(0), Missing()},
		{Number(31), Missing()},
		{Number(77), Missing()},
		{Number(99), Missing()},
		{Number(-1), Missing()},
		{Missing(), Missing()},
	}
	for _, tt := range tests {
		got := PoorHealthDaysRule.Clean(tt.in)
		assert.Truef(t, got.Equal(tt.want), "clean(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestBMIRule(t *testing.T) {
	assert.True(t, BMIRule.Clean(Number(7.77)).IsMissing())
	assert.True(t, BMIRule.Clean(Number(9.99)).IsMissing())
	assert.True(t, BMIRule.Clean(Number(777)).IsMissing())
	assert.True(t, BMIRule.Clean(Number(999)).IsMissing())
	assert.True(t, BMIRule.Clean(Number(2.35)).Equal(Number(2.35)))

	// Sentinels survive the rescale as the same floats as their literals.
	assert.True(t, BMIRule.Clean(BMIRule.Rescale(Number(777))).IsMissing())
	assert.True(t, BMIRule.Clean(BMIRule.Rescale(Number(999))).IsMissing())
	assert.True(t, BMIRule.Clean(BMIRule.Rescale(Number(77700))).IsMissing())
	assert.True(t, BMIRule.Clean(BMIRule.Rescale(Number(2500))).Equal(Number(25)))
}

func TestEmploymentRule(t *testing.T) {
	assert.True(t, EmploymentRule.Clean(Number(9)).IsMissing())
	for _, v := range []float64{1, 2, 7, 8} {
		assert.True(t, EmploymentRule.Clean(Number(v)).Equal(Number(v)))
	}
}

func TestPassThroughRule(t *testing.T) {
	for _, v := range []float64{-1, 0, 7, 8, 9, 88, 999} {
		assert.True(t, PassThroughRule.Clean(Number(v)).Equal(Number(v)))
	}
	assert.True(t, PassThroughRule.Rescale(Number(42)).Equal(Number(42)))
}

func TestReapplyIsIdempotent(t *testing.T) {
	rules := []Rule{PassThroughRule, BMIRule, OrdinalSentinelRule, PoorHealthDaysRule, EmploymentRule}
	inputs := []Value{Missing()}
	for v := -2.0; v <= 100; v++ {
		inputs = append(inputs, Number(v))
	}
	inputs = append(inputs, Number(7.77), Number(9.99), Number(2.35), Number(777), Number(999))

	for _, r := range rules {
		for _, in := range inputs {
			once := r.Clean(in)
			twice := r.Reapply(once)
			assert.Truef(t, twice.Equal(once), "%s: reapply(clean(%s)) = %s, want %s", r.Kind, in, twice, once)
		}
	}
}

func TestRuleValidate(t *testing.T) {
	assert.NoError(t, OrdinalSentinelRule.validate())
	assert.Error(t, Rule{Kind: "bogus"}.validate())
	assert.Error(t, Rule{Kind: RuleBMI, Scale: -1}.validate())
	assert.Error(t, Rule{
		Kind:         RuleOrdinalSentinel,
		MissingCodes: []float64{8},
		Recode:       map[float64]float64{8: 5},
	}.validate())
	assert.Error(t, Rule{Kind: RulePoorHealthDays, Keep: &Interval{Min: 30, Max: 1}}.validate())
}

func TestRecodePairsSorted(t *testing.T) {
	r := Rule{Kind: RuleOrdinalSentinel, Recode: map[float64]float64{8: 5, 3: 1}}
	assert.Equal(t, [][2]float64{{3, 1}, {8, 5}}, r.RecodePairs())
}
