package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinrisk/domain/core"
	"skinrisk/domain/model"
)

func sampleModel() *model.LogisticModel {
	trained := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return &model.LogisticModel{
		Name:         "skin_cancer",
		Version:      "3",
		Intercept:    -2.5,
		Coefficients: map[string]float64{"_AGE80": 0.04, "GENHLTH": 0.1},
		Imputation:   map[string]float64{"_AGE80": 55, "GENHLTH": 3},
		TrainedAt:    &trained,
	}
}

func TestModelRowRoundTrip(t *testing.T) {
	m := sampleModel()
	row, err := newModelRow(m)
	require.NoError(t, err)

	assert.True(t, row.IsActive)
	assert.NotEmpty(t, row.ID)
	assert.Equal(t, m.Fingerprint().String(), row.Fingerprint)

	back, err := row.toModel()
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestModelRowRejectsTamperedWeights(t *testing.T) {
	row, err := newModelRow(sampleModel())
	require.NoError(t, err)
	row.Coefficients = []byte(`{"_AGE80": 0.5, "GENHLTH": 0.1}`)

	_, err = row.toModel()
	assert.ErrorIs(t, err, core.ErrInvalidModel)
}

func TestModelRowRejectsTamperedImputation(t *testing.T) {
	row, err := newModelRow(sampleModel())
	require.NoError(t, err)
	row.Imputation = []byte(`{"_AGE80": 55, "GENHLTH": 1}`)

	_, err = row.toModel()
	assert.ErrorIs(t, err, core.ErrInvalidModel)
	assert.ErrorContains(t, err, "does not match model")
}

func TestModelRowRejectsBadJSON(t *testing.T) {
	row, err := newModelRow(sampleModel())
	require.NoError(t, err)
	row.Imputation = []byte(`not json`)

	_, err = row.toModel()
	assert.ErrorIs(t, err, core.ErrInvalidModel)
}
