package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"skinrisk/domain/core"
	"skinrisk/domain/survey"
)

func fullModel() *LogisticModel {
	m := &LogisticModel{
		Name:         "skin_cancer",
		Version:      "1",
		Intercept:    -2,
		Coefficients: map[string]float64{},
		Imputation:   map[string]float64{},
	}
	for _, f := range survey.DefaultSchema().Fields() {
		m.Coefficients[string(f)] = 0.1
		m.Imputation[string(f)] = 1
	}
	return m
}

func TestValidateAcceptsCompleteModel(t *testing.T) {
	assert.NoError(t, fullModel().Validate(survey.DefaultSchema()))
}

func TestValidateReportsMismatch(t *testing.T) {
	m := fullModel()
	delete(m.Coefficients, string(survey.FieldBMI))
	m.Coefficients["HEIGHT"] = 1

	err := m.Validate(survey.DefaultSchema())
	assert.True(t, errors.Is(err, core.ErrFeatureMismatch))
	assert.Contains(t, err.Error(), "_BMI5")
	assert.Contains(t, err.Error(), "HEIGHT")
}

func TestValidateRejectsNonFinite(t *testing.T) {
	m := fullModel()
	m.Intercept = math.NaN()
	assert.True(t, errors.Is(m.Validate(survey.DefaultSchema()), core.ErrInvalidModel))

	m = fullModel()
	m.Imputation[string(survey.FieldAge)] = math.Inf(1)
	assert.True(t, errors.Is(m.Validate(survey.DefaultSchema()), core.ErrInvalidModel))

	var nilModel *LogisticModel
	assert.Error(t, nilModel.Validate(survey.DefaultSchema()))
}

func TestFingerprintIgnoresMapOrder(t *testing.T) {
	a := fullModel()
	b := fullModel()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Coefficients[string(survey.FieldSex)] = 0.2
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintCoversImputation(t *testing.T) {
	a := fullModel()
	b := fullModel()
	b.Imputation[string(survey.FieldPoorHealth)] = 4
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "skin_cancer@1", fullModel().Label())
	assert.Equal(t, "x", (&LogisticModel{Name: "x"}).Label())
}
