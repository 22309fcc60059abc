package ports

import (
	"context"

	"skinrisk/domain/survey"
)

// Classifier is the trained model boundary. Implementations are loaded once
// and must be safe for concurrent read-only use.
type Classifier interface {
	// PredictProba returns the positive-class probability for one feature vector
	PredictProba(ctx context.Context, features survey.FeatureVector) (float64, error)

	// Name identifies the loaded model
	Name() string
}
