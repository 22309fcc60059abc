package risk_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinrisk/domain/risk"
)

func TestScoreOf(t *testing.T) {
	tests := []struct {
		probability float64
		want        int
	}{
		{0.0, 1},
		{0.04, 1},
		{0.05, 1},
		{0.15, 2},
		{0.25, 3},
		{0.34, 3},
		{0.35, 4},
		{0.55, 6},
		{0.65, 7},
		{0.72, 7},
		{0.94, 9},
		{0.95, 10},
		{1.0, 10},
	}
	for _, tt := range tests {
		got, err := risk.ScoreOf(tt.probability)
		require.NoError(t, err)
		assert.Equalf(t, tt.want, got, "ScoreOf(%v)", tt.probability)
	}
}

func TestScoreOf_TiesRoundUp(t *testing.T) {
	// Every x.5 boundary that is exactly representable rounds up.
	for _, p := range []float64{0.25, 0.5, 0.75} {
		got, err := risk.ScoreOf(p)
		require.NoError(t, err)
		assert.Equal(t, int(p*10)+1, got, "ScoreOf(%v)", p)
	}
}

func TestScoreOf_Monotonic(t *testing.T) {
	prev := 0
	for i := 0; i <= 1000; i++ {
		got, err := risk.ScoreOf(float64(i) / 1000)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, risk.MinScore)
		assert.LessOrEqual(t, got, risk.MaxScore)
		prev = got
	}
}

func TestScoreOf_OutOfRange(t *testing.T) {
	for _, p := range []float64{-0.01, 1.0001, 7, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := risk.ScoreOf(p)
		require.Error(t, err, "ScoreOf(%v)", p)

		var rangeErr *risk.RangeError
		assert.True(t, errors.As(err, &rangeErr))
		assert.True(t, errors.Is(err, risk.ErrProbabilityOutOfRange))
	}
}

func TestNewAssessment(t *testing.T) {
	a, err := risk.NewAssessment(0.72)
	require.NoError(t, err)
	assert.Equal(t, 7, a.Score)
	assert.Equal(t, risk.TierHigh, a.Tier)
	assert.Equal(t, 0.72, a.Probability)
	assert.False(t, a.ID.String() == "")
	assert.False(t, a.CreatedAt.IsZero())

	_, err = risk.NewAssessment(1.2)
	assert.ErrorIs(t, err, risk.ErrProbabilityOutOfRange)
}
