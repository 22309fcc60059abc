// Package cleaner maps raw survey answers to cleaned classifier features.
//
// Each field is cleaned on its own through the schema's rule table: sentinel
// codes become missing, folded codes are recoded, and _BMI5 is rescaled from
// BMI*100 to BMI. Nothing is zero-filled and no record is dropped.
package cleaner

import (
	"skinrisk/domain/survey"
)

// ChangeKind classifies what cleaning did to one field
type ChangeKind string

const (
	ChangeKept     ChangeKind = "kept"
	ChangeRescaled ChangeKind = "rescaled"
	ChangeRecoded  ChangeKind = "recoded"
	ChangeMissing  ChangeKind = "missing"
	ChangeAbsent   ChangeKind = "absent"
)

// Change records one field's raw and cleaned value
type Change struct {
	Field   survey.Field    `json:"field"`
	Rule    survey.RuleKind `json:"rule"`
	Kind    ChangeKind      `json:"kind"`
	Raw     survey.Value    `json:"raw"`
	Cleaned survey.Value    `json:"cleaned"`
}

// DomainCleaner is stateless apart from its immutable schema and is safe
// for concurrent use.
type DomainCleaner struct {
	schema *survey.Schema
}

// NewDomainCleaner creates a cleaner; a nil schema means the default survey schema
func NewDomainCleaner(schema *survey.Schema) *DomainCleaner {
	if schema == nil {
		schema = survey.DefaultSchema()
	}
	return &DomainCleaner{schema: schema}
}

// Schema returns the schema the cleaner applies
func (c *DomainCleaner) Schema() *survey.Schema {
	return c.schema
}

// CleanValue cleans one raw survey value for a field, rescaling first
func (c *DomainCleaner) CleanValue(f survey.Field, raw survey.Value) survey.Value {
	rule := c.schema.RuleFor(f)
	return rule.Clean(rule.Rescale(raw))
}

// Transform cleans a raw record into a new record. Schema fields absent from
// raw come out missing; other keys are copied unchanged.
func (c *DomainCleaner) Transform(raw survey.RawRecord) survey.CleanedRecord {
	out := make(map[survey.Field]survey.Value, len(raw)+c.schema.Len())
	for f, v := range raw {
		out[f] = v
	}
	for _, f := range c.schema.Fields() {
		out[f] = c.CleanValue(f, raw[f])
	}
	return survey.NewCleanedRecord(out)
}

// TransformWithReport is Transform plus a per-field account in schema order
func (c *DomainCleaner) TransformWithReport(raw survey.RawRecord) (survey.CleanedRecord, []Change) {
	cleaned := c.Transform(raw)

	specs := c.schema.Specs()
	changes := make([]Change, 0, len(specs))
	for _, spec := range specs {
		rawValue, present := raw[spec.Field]
		cleanedValue := cleaned.Get(spec.Field)
		changes = append(changes, Change{
			Field:   spec.Field,
			Rule:    spec.Rule.Kind,
			Kind:    classify(spec.Rule, rawValue, present, cleanedValue),
			Raw:     rawValue,
			Cleaned: cleanedValue,
		})
	}
	return cleaned, changes
}

// Reclean applies the cleaning rules to an already cleaned record without
// rescaling. Reclean(Transform(r)) equals Transform(r).
func (c *DomainCleaner) Reclean(cleaned survey.CleanedRecord) survey.CleanedRecord {
	out := cleaned.Map()
	for _, f := range c.schema.Fields() {
		out[f] = c.schema.RuleFor(f).Reapply(cleaned.Get(f))
	}
	return survey.NewCleanedRecord(out)
}

func classify(rule survey.Rule, raw survey.Value, present bool, cleaned survey.Value) ChangeKind {
	switch {
	case !present || raw.IsMissing():
		return ChangeAbsent
	case cleaned.IsMissing():
		return ChangeMissing
	case rule.Rescale(raw).Equal(cleaned) && !raw.Equal(cleaned):
		return ChangeRescaled
	case raw.Equal(cleaned):
		return ChangeKept
	default:
		return ChangeRecoded
	}
}
