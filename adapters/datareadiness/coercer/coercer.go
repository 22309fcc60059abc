package coercer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"skinrisk/domain/survey"
)

// ValueCoercer converts loosely typed survey cells into survey values
type ValueCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	NumericThreshold float64  `json:"numeric_threshold"` // share of non-blank cells that must parse for a column to count as numeric
	MissingTokens    []string `json:"missing_tokens"`    // cell text read as missing, compared case-insensitively
	AllowEuropean    bool     `json:"allow_european"`    // treat a lone comma as the decimal separator
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold: 0.8,
		MissingTokens:    []string{"", ".", "na", "n/a", "nan", "null", "none", "missing"},
		AllowEuropean:    true,
	}
}

// NewValueCoercer creates a coercer with the given config
func NewValueCoercer(config CoercionConfig) *ValueCoercer {
	return &ValueCoercer{config: config}
}

// CoerceValue deterministically converts an untyped value. The second result
// is false when the input was present but could not be read as a number.
func (c *ValueCoercer) CoerceValue(rawValue interface{}) (survey.Value, bool) {
	switch v := rawValue.(type) {
	case nil:
		return survey.Missing(), true
	case survey.Value:
		return v, true
	case float64:
		return survey.Number(v), true
	case float32:
		return survey.Number(float64(v)), true
	case int:
		return survey.Number(float64(v)), true
	case int64:
		return survey.Number(float64(v)), true
	case int32:
		return survey.Number(float64(v)), true
	case bool:
		// Survey yes/no questions code yes as 1 and no as 2.
		if v {
			return survey.Number(1), true
		}
		return survey.Number(2), true
	case string:
		return c.CoerceString(v)
	default:
		return c.CoerceString(fmt.Sprintf("%v", v))
	}
}

// CoerceString parses a cell's text
func (c *ValueCoercer) CoerceString(s string) (survey.Value, bool) {
	if c.isMissingToken(s) {
		return survey.Missing(), true
	}
	if n, ok := c.tryParseNumeric(s); ok {
		return survey.Number(n), true
	}
	return survey.Missing(), false
}

// AnalyzeColumn reports how much of a column parses as numbers
func (c *ValueCoercer) AnalyzeColumn(values []string) ColumnAnalysis {
	analysis := ColumnAnalysis{TotalCount: len(values)}
	for _, v := range values {
		if c.isMissingToken(v) {
			analysis.MissingCount++
			continue
		}
		if _, ok := c.tryParseNumeric(v); ok {
			analysis.NumericCount++
		}
	}
	present := analysis.TotalCount - analysis.MissingCount
	if present > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(present)
	}
	analysis.IsNumeric = present == 0 || analysis.NumericRatio >= c.config.NumericThreshold
	return analysis
}

func (c *ValueCoercer) isMissingToken(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	for _, tok := range c.config.MissingTokens {
		if t == tok {
			return true
		}
	}
	return false
}

// tryParseNumeric parses with strict rules. Handles parentheses for
// negatives, European decimals, and thousands separators.
func (c *ValueCoercer) tryParseNumeric(strVal string) (float64, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return 0, false
	}

	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	hasComma := strings.Contains(cleanVal, ",")
	hasPeriod := strings.Contains(cleanVal, ".")
	hasSpace := strings.Contains(cleanVal, " ")

	if hasComma && (hasPeriod || hasSpace) {
		commaIdx := strings.LastIndex(cleanVal, ",")
		periodIdx := strings.LastIndex(cleanVal, ".")
		if commaIdx > periodIdx {
			// 1.234,56 or 1 234,56
			cleanVal = strings.ReplaceAll(cleanVal, ".", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		} else {
			// 1,234.56
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
		}
	} else if hasComma && c.config.AllowEuropean {
		cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
	} else {
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		cleanVal = strings.ReplaceAll(cleanVal, " ", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// ColumnAnalysis contains the results of a column scan
type ColumnAnalysis struct {
	TotalCount   int     `json:"total_count"`
	MissingCount int     `json:"missing_count"`
	NumericCount int     `json:"numeric_count"`
	NumericRatio float64 `json:"numeric_ratio"`
	IsNumeric    bool    `json:"is_numeric"`
}
