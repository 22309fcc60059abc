package risk

import (
	"skinrisk/domain/core"
)

// Assessment is the scored outcome of one request
type Assessment struct {
	ID              core.AssessmentID `json:"id"`
	Probability     float64           `json:"probability"`
	Score           int               `json:"score"`
	Tier            Tier              `json:"tier"`
	Model           string            `json:"model,omitempty"`
	MissingFeatures int               `json:"missing_features"`
	CreatedAt       core.Timestamp    `json:"created_at"`
}

// NewAssessment scores a classifier probability. Out-of-range probabilities
// return a *RangeError.
func NewAssessment(probability float64) (Assessment, error) {
	score, err := ScoreOf(probability)
	if err != nil {
		return Assessment{}, err
	}
	return Assessment{
		ID:          core.NewAssessmentID(),
		Probability: probability,
		Score:       score,
		Tier:        TierOf(score),
		CreatedAt:   core.Now(),
	}, nil
}
