package survey

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a single survey answer: a finite number or the missing marker.
// The zero Value is missing.
type Value struct {
	num   float64
	valid bool
}

// Number creates a numeric value. NaN and infinities become missing.
func Number(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing()
	}
	return Value{num: v, valid: true}
}

// Missing creates the missing marker
func Missing() Value {
	return Value{}
}

// IsMissing reports whether the value carries no measurement
func (v Value) IsMissing() bool {
	return !v.valid
}

// Float64 returns the number and whether it is present
func (v Value) Float64() (float64, bool) {
	return v.num, v.valid
}

// OrNaN returns the number, or NaN when missing
func (v Value) OrNaN() float64 {
	if !v.valid {
		return math.NaN()
	}
	return v.num
}

// Equal compares two values; missing equals missing
func (v Value) Equal(other Value) bool {
	if v.valid != other.valid {
		return false
	}
	return !v.valid || v.num == other.num
}

// String returns the string representation of the value
func (v Value) String() string {
	if !v.valid {
		return "<missing>"
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// MarshalJSON encodes missing as null
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON accepts null or a JSON number
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Missing()
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("survey value must be a number or null: %w", err)
	}
	*v = Number(n)
	return nil
}
