package risk

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tier is an immutable value object for the qualitative risk band
type Tier struct {
	value string
}

var (
	TierLow      = Tier{value: "Low"}
	TierModerate = Tier{value: "Moderate"}
	TierHigh     = Tier{value: "High"}
)

// Tier boundaries, closed on both ends
const (
	LowMaxScore      = 3
	ModerateMaxScore = 6
)

// TierOf derives the tier from a score: <=3 Low, 4-6 Moderate, >=7 High
func TierOf(score int) Tier {
	switch {
	case score <= LowMaxScore:
		return TierLow
	case score <= ModerateMaxScore:
		return TierModerate
	default:
		return TierHigh
	}
}

// Tiers returns every tier in ascending order
func Tiers() []Tier {
	return []Tier{TierLow, TierModerate, TierHigh}
}

// TierFromString reconstructs a Tier, case-insensitively
func TierFromString(s string) (Tier, error) {
	for _, t := range Tiers() {
		if strings.EqualFold(s, t.value) {
			return t, nil
		}
	}
	return Tier{}, fmt.Errorf("invalid risk tier: %s", s)
}

// String returns the string representation.
func (t Tier) String() string {
	return t.value
}

// IsZero returns true if the tier has not been set.
func (t Tier) IsZero() bool {
	return t.value == ""
}

// ScoreRange returns the inclusive scores that map to this tier
func (t Tier) ScoreRange() (int, int) {
	switch t {
	case TierLow:
		return MinScore, LowMaxScore
	case TierModerate:
		return LowMaxScore + 1, ModerateMaxScore
	case TierHigh:
		return ModerateMaxScore + 1, MaxScore
	default:
		return 0, 0
	}
}

// Label is the display heading for the tier
func (t Tier) Label() string {
	if t.IsZero() {
		return ""
	}
	return t.value + " Risk"
}

// Color is the display colour for the tier
func (t Tier) Color() string {
	switch t {
	case TierLow:
		return "#2ECC71"
	case TierModerate:
		return "#F1C40F"
	case TierHigh:
		return "#E74C3C"
	default:
		return ""
	}
}

// Advisory is the tier's recommendation, in markdown
func (t Tier) Advisory() string {
	switch t {
	case TierLow:
		return "Your current profile indicates a **lower** level of risk. " +
			"Continue maintaining a healthy lifestyle and perform regular skin self-checks."
	case TierModerate:
		return "Some factors in your profile are associated with an **increased** risk. " +
			"Monitoring skin changes and considering preventive medical consultation is recommended."
	case TierHigh:
		return "Several factors in your profile are associated with a **higher** risk level. " +
			"A professional medical evaluation is strongly recommended for further assessment."
	default:
		return ""
	}
}

// RecommendedActions apply to every tier
var RecommendedActions = []string{
	"Consult a qualified healthcare professional or dermatologist",
	"Perform regular skin self-examinations",
	"Protect your skin from excessive sun exposure",
	"Seek medical advice if you notice unusual skin changes",
}

// Disclaimer accompanies every assessment
const Disclaimer = "This tool is intended for educational and research purposes only. " +
	"It does not replace professional medical diagnosis or advice."

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := TierFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
