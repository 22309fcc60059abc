package assembly

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinrisk/domain/survey"
)

func intPtr(v int) *int { return &v }

func sampleAnswers() FormAnswers {
	return FormAnswers{
		Sex: 1, Age: 40, Marital: 1, Employ: 1,
		WeightKg: 70, HeightCm: 175,
		GenHealth: 2, PhysDays: 1, MentDays: 1, PoorHealth: intPtr(0),
		Exercise: 1, Smoke100: 2, HeartDisease: 2, Asthma: 3, Diabetes: 3,
		DiffWalk: 2, Arthritis: 2, Kidney: 2, SkinCancer: 2, OtherCancer: 2, Depression: 2,
	}
}

func TestBMI(t *testing.T) {
	assert.Equal(t, 22.86, BMI(70, 175))
	assert.Equal(t, 25.0, BMI(81, 180))
	assert.True(t, math.IsNaN(BMI(70, 0)))
	assert.True(t, math.IsNaN(BMI(70, -10)))
}

func TestToRawRecordCoversSchema(t *testing.T) {
	raw := sampleAnswers().ToRawRecord()
	for _, f := range survey.DefaultSchema().Fields() {
		_, ok := raw[f]
		assert.Truef(t, ok, "missing key %s", f)
	}
	assert.Len(t, raw, survey.DefaultSchema().Len())
}

func TestToRawRecordScalesBMI(t *testing.T) {
	raw := sampleAnswers().ToRawRecord()
	assert.True(t, raw[survey.FieldBMI].Equal(survey.Number(2286)))
}

func TestToRawRecordUndefinedBMIIsMissing(t *testing.T) {
	a := sampleAnswers()
	a.HeightCm = 0
	assert.True(t, a.ToRawRecord()[survey.FieldBMI].IsMissing())
}

func TestToRawRecordCollapsesAge(t *testing.T) {
	tests := []struct {
		age, want int
	}{
		{18, 18},
		{79, 79},
		{MaxSurveyAge, MaxSurveyAge},
		{81, MaxSurveyAge},
		{99, MaxSurveyAge},
	}
	for _, tt := range tests {
		a := sampleAnswers()
		a.Age = tt.age
		got := a.ToRawRecord()[survey.FieldAge]
		assert.True(t, got.Equal(survey.Number(float64(tt.want))), "age %d gave %v", tt.age, got)
	}
}

func TestToRawRecordPoorHealth(t *testing.T) {
	a := sampleAnswers()
	a.PoorHealth = intPtr(12)
	assert.True(t, a.ToRawRecord()[survey.FieldPoorHealth].Equal(survey.Number(12)))

	a.PoorHealth = nil
	assert.True(t, a.ToRawRecord()[survey.FieldPoorHealth].IsMissing())
}

func TestToRawRecordPassesSchemaDomains(t *testing.T) {
	a := sampleAnswers()
	a.Age = 99
	require.NoError(t, survey.DefaultSchema().Validate(a.ToRawRecord()))
}
