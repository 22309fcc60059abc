package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinrisk/domain/risk"
	"skinrisk/domain/survey"
)

func TestWilsonInterval(t *testing.T) {
	lo, hi := WilsonInterval(0, 0, Confidence)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	lo, hi = WilsonInterval(5, 10, Confidence)
	assert.InDelta(t, 0.2366, lo, 1e-3)
	assert.InDelta(t, 0.7634, hi, 1e-3)

	lo, hi = WilsonInterval(0, 20, Confidence)
	assert.InDelta(t, 0.0, lo, 1e-9)
	assert.InDelta(t, 0.1611, hi, 1e-3)
}

func TestSummarize(t *testing.T) {
	s, err := NewDistributionAnalyzer().Summarize([]float64{1, 2, 3, 4, 100})
	require.NoError(t, err)
	assert.Equal(t, 22.0, s.Mean)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.Equal(t, 1, s.Outliers)
	assert.Greater(t, s.Skewness, 0.0)

	single, err := NewDistributionAnalyzer().Summarize([]float64{7})
	require.NoError(t, err)
	assert.Equal(t, 0.0, single.StdDev)
	assert.Equal(t, 7.0, single.Median)

	_, err = NewDistributionAnalyzer().Summarize(nil)
	assert.Error(t, err)
}

func TestProfileDataset(t *testing.T) {
	records := []survey.CleanedRecord{
		survey.NewCleanedRecord(map[survey.Field]survey.Value{
			survey.FieldGenHealth: survey.Number(2),
			survey.FieldBMI:       survey.Number(25),
		}),
		survey.NewCleanedRecord(map[survey.Field]survey.Value{
			survey.FieldGenHealth: survey.Missing(),
			survey.FieldBMI:       survey.Number(30),
		}),
	}

	profile := NewDataProfiler(nil, nil).ProfileDataset(records)
	assert.Equal(t, 2, profile.Rows)
	require.Len(t, profile.Fields, survey.DefaultSchema().Len())

	byField := map[survey.Field]FieldProfile{}
	for _, fp := range profile.Fields {
		byField[fp.Field] = fp
	}

	gen := byField[survey.FieldGenHealth]
	assert.Equal(t, 1, gen.Missing)
	assert.Equal(t, 0.5, gen.MissingRate)
	assert.Less(t, gen.MissingLow, 0.5)
	assert.Greater(t, gen.MissingHigh, 0.5)
	require.NotNil(t, gen.Summary)
	assert.Equal(t, 2.0, gen.Summary.Mean)

	bmi := byField[survey.FieldBMI]
	assert.Equal(t, 0, bmi.Missing)
	require.NotNil(t, bmi.Summary)
	assert.Equal(t, 27.5, bmi.Summary.Mean)

	sex := byField[survey.FieldSex]
	assert.Equal(t, 2, sex.Missing)
	assert.Nil(t, sex.Summary)
}

func TestAddTiers(t *testing.T) {
	var assessments []risk.Assessment
	for _, p := range []float64{0.1, 0.2, 0.5, 0.9} {
		a, err := risk.NewAssessment(p)
		require.NoError(t, err)
		assessments = append(assessments, a)
	}

	profile := &DatasetProfile{}
	profile.AddTiers(assessments)
	assert.Equal(t, map[string]int{"Low": 2, "Moderate": 1, "High": 1}, profile.Tiers)
}
