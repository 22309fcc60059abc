// Package logistic serves a logistic-regression model as a read-only classifier.
package logistic

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"

	"skinrisk/domain/core"
	"skinrisk/domain/model"
	"skinrisk/domain/survey"
)

// Classifier evaluates p = sigmoid(b + w·x). Its fields are fixed at
// construction, so concurrent PredictProba calls need no locking.
type Classifier struct {
	label       string
	fingerprint core.Hash
	fields      []survey.Field
	intercept   float64
	weights     []float64
	imputation  []float64
}

// New checks the model against the schema and lays the weights out in schema order
func New(m *model.LogisticModel, schema *survey.Schema) (*Classifier, error) {
	if err := m.Validate(schema); err != nil {
		return nil, err
	}

	fields := schema.Fields()
	c := &Classifier{
		label:       m.Label(),
		fingerprint: m.Fingerprint(),
		fields:      fields,
		intercept:   m.Intercept,
		weights:     make([]float64, len(fields)),
		imputation:  make([]float64, len(fields)),
	}
	for i, f := range fields {
		c.weights[i] = m.Coefficients[string(f)]
		c.imputation[i] = m.Imputation[string(f)]
	}
	return c, nil
}

// LoadFile reads a JSON model file
func LoadFile(path string, schema *survey.Schema) (*Classifier, error) {
	m, err := ReadModelFile(path)
	if err != nil {
		return nil, err
	}
	return New(m, schema)
}

// ReadModelFile decodes a JSON model file without checking it
func ReadModelFile(path string) (*model.LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	var m model.LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidModel, path, err)
	}
	return &m, nil
}

// Name identifies the model as name@version
func (c *Classifier) Name() string {
	return c.label
}

// Fingerprint identifies the model weights
func (c *Classifier) Fingerprint() core.Hash {
	return c.fingerprint
}

// PredictProba returns P(skin cancer) for one cleaned feature vector
func (c *Classifier) PredictProba(ctx context.Context, fv survey.FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	x, err := c.align(fv)
	if err != nil {
		return 0, err
	}
	for i, v := range x {
		if math.IsNaN(v) {
			x[i] = c.imputation[i]
		}
	}
	return sigmoid(c.intercept + floats.Dot(c.weights, x)), nil
}

// align returns the vector's values in the model's field order
func (c *Classifier) align(fv survey.FeatureVector) ([]float64, error) {
	if len(fv.Names) != len(fv.Values) {
		return nil, fmt.Errorf("%w: %d names for %d values", core.ErrFeatureMismatch, len(fv.Names), len(fv.Values))
	}

	inOrder := len(fv.Names) == len(c.fields)
	for i := 0; inOrder && i < len(c.fields); i++ {
		inOrder = fv.Names[i] == c.fields[i]
	}
	if inOrder {
		return fv.Floats(), nil
	}

	x := make([]float64, len(c.fields))
	for i, f := range c.fields {
		v, ok := fv.Lookup(f)
		if !ok {
			return nil, fmt.Errorf("%w: vector lacks %s", core.ErrFeatureMismatch, f)
		}
		x[i] = v.OrNaN()
	}
	return x, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
