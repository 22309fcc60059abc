// Package profiling summarises cleaned survey datasets.
package profiling

import (
	"skinrisk/domain/risk"
	"skinrisk/domain/survey"
	"skinrisk/internal"
)

// Confidence is the level used for missing-rate intervals
const Confidence = 0.95

// FieldProfile is the cleaned-value profile of one field
type FieldProfile struct {
	Field       survey.Field `json:"field"`
	Present     int          `json:"present"`
	Missing     int          `json:"missing"`
	MissingRate float64      `json:"missing_rate"`
	MissingLow  float64      `json:"missing_rate_low"`
	MissingHigh float64      `json:"missing_rate_high"`
	Summary     *Summary     `json:"summary,omitempty"`
}

// DatasetProfile is the profile of a cleaned dataset
type DatasetProfile struct {
	Rows   int            `json:"rows"`
	Fields []FieldProfile `json:"fields"`
	Tiers  map[string]int `json:"tiers,omitempty"`
}

// DataProfiler profiles cleaned records field by field in schema order
type DataProfiler struct {
	schema   *survey.Schema
	analyzer *DistributionAnalyzer
	logger   *internal.Logger
}

// NewDataProfiler creates a new data profiler
func NewDataProfiler(schema *survey.Schema, logger *internal.Logger) *DataProfiler {
	if schema == nil {
		schema = survey.DefaultSchema()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataProfiler{
		schema:   schema,
		analyzer: NewDistributionAnalyzer(),
		logger:   logger.With("Profiler"),
	}
}

// ProfileDataset profiles every schema field across records
func (dp *DataProfiler) ProfileDataset(records []survey.CleanedRecord) *DatasetProfile {
	profile := &DatasetProfile{Rows: len(records)}

	for _, f := range dp.schema.Fields() {
		values := make([]float64, 0, len(records))
		for _, rec := range records {
			if x, ok := rec.Get(f).Float64(); ok {
				values = append(values, x)
			}
		}
		profile.Fields = append(profile.Fields, dp.ProfileColumn(f, values, len(records)))
	}

	dp.logger.Debug("profiled %d rows across %d fields", len(records), len(profile.Fields))
	return profile
}

// ProfileColumn profiles one field given its present values and the row count
func (dp *DataProfiler) ProfileColumn(f survey.Field, present []float64, rows int) FieldProfile {
	fp := FieldProfile{
		Field:   f,
		Present: len(present),
		Missing: rows - len(present),
	}
	if rows > 0 {
		fp.MissingRate = float64(fp.Missing) / float64(rows)
	}
	fp.MissingLow, fp.MissingHigh = WilsonInterval(fp.Missing, rows, Confidence)

	if len(present) > 0 {
		s, err := dp.analyzer.Summarize(present)
		if err != nil {
			dp.logger.Warn("summary for %s failed: %v", f, err)
		} else {
			fp.Summary = &s
		}
	}
	return fp
}

// AddTiers counts assessments per tier; every tier appears, even at zero
func (p *DatasetProfile) AddTiers(assessments []risk.Assessment) {
	p.Tiers = make(map[string]int, len(risk.Tiers()))
	for _, t := range risk.Tiers() {
		p.Tiers[t.String()] = 0
	}
	for _, a := range assessments {
		if !a.Tier.IsZero() {
			p.Tiers[a.Tier.String()]++
		}
	}
}
