package model

import (
	"errors"
	"fmt"
	"math"
	"time"

	"skinrisk/domain/core"
	"skinrisk/domain/survey"
)

// LogisticModel is a trained binary logistic regression over the survey
// features. Missing features are replaced by their imputation value before
// the linear predictor is computed.
type LogisticModel struct {
	Name         string             `json:"name"`
	Version      string             `json:"version"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
	Imputation   map[string]float64 `json:"imputation"`
	TrainedAt    *time.Time         `json:"trained_at,omitempty"`
}

// Validate checks the model covers exactly the schema's features
func (m *LogisticModel) Validate(s *survey.Schema) error {
	if m == nil {
		return fmt.Errorf("%w: nil model", core.ErrInvalidModel)
	}
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", core.ErrInvalidModel)
	}
	if !finite(m.Intercept) {
		return fmt.Errorf("%w: intercept is not finite", core.ErrInvalidModel)
	}

	var errs []error
	known := make(map[string]bool, s.Len())
	for _, f := range s.Fields() {
		name := string(f)
		known[name] = true

		w, ok := m.Coefficients[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: no coefficient for %s", core.ErrFeatureMismatch, name))
		} else if !finite(w) {
			errs = append(errs, fmt.Errorf("%w: coefficient for %s is not finite", core.ErrInvalidModel, name))
		}

		imp, ok := m.Imputation[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: no imputation value for %s", core.ErrFeatureMismatch, name))
		} else if !finite(imp) {
			errs = append(errs, fmt.Errorf("%w: imputation for %s is not finite", core.ErrInvalidModel, name))
		}
	}
	for name := range m.Coefficients {
		if !known[name] {
			errs = append(errs, fmt.Errorf("%w: coefficient for unknown feature %s", core.ErrFeatureMismatch, name))
		}
	}
	return errors.Join(errs...)
}

// Fingerprint identifies everything that affects a prediction: the weights
// and the values imputed for missing features
func (m *LogisticModel) Fingerprint() core.Hash {
	return core.HashWeights(m.Intercept, m.Coefficients, m.Imputation)
}

// Label is "name@version" for logs and responses
func (m *LogisticModel) Label() string {
	if m.Version == "" {
		return m.Name
	}
	return m.Name + "@" + m.Version
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
