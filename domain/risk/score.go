package risk

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinScore = 1
	MaxScore = 10
)

// ErrProbabilityOutOfRange is matched by every RangeError
var ErrProbabilityOutOfRange = errors.New("probability out of range [0,1]")

// RangeError reports a classifier probability outside [0,1]. It is never
// clamped away: it means the classifier integration is broken.
type RangeError struct {
	Probability float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: got %g", ErrProbabilityOutOfRange, e.Probability)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrProbabilityOutOfRange
}

// ScoreOf maps a probability to a score in [1,10].
//
// The score is round(p*10) with ties rounded up (0.25 -> 3, 0.65 -> 7), then
// clamped so that no one is ever told their risk is zero.
func ScoreOf(probability float64) (int, error) {
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return 0, &RangeError{Probability: probability}
	}
	score := int(math.Floor(probability*10 + 0.5))
	if score < MinScore {
		score = MinScore
	}
	if score > MaxScore {
		score = MaxScore
	}
	return score, nil
}
