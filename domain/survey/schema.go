package survey

import (
	"errors"
	"strings"

	"skinrisk/domain/core"
)

// FieldSpec declares one schema field: its raw domain and its cleaning rule
type FieldSpec struct {
	Field       Field    `json:"field"`
	Aliases     []string `json:"aliases,omitempty"`
	Rule        Rule     `json:"rule"`
	Domain      Domain   `json:"domain"`
	Description string   `json:"description,omitempty"`
}

// Schema is the ordered list of classifier features. Order is the
// classifier's training column order.
type Schema struct {
	specs []FieldSpec
	index map[string]int
}

// NewSchema checks the field list and builds the name index
func NewSchema(specs []FieldSpec) (*Schema, error) {
	if len(specs) == 0 {
		return nil, core.NewSchemaError("-", "schema has no fields")
	}

	s := &Schema{
		specs: make([]FieldSpec, len(specs)),
		index: make(map[string]int, len(specs)*2),
	}
	copy(s.specs, specs)

	for i, spec := range s.specs {
		if strings.TrimSpace(string(spec.Field)) == "" {
			return nil, core.NewSchemaError("-", "empty field name")
		}
		if err := spec.Rule.validate(); err != nil {
			return nil, core.NewSchemaError(string(spec.Field), err.Error())
		}
		names := append([]string{string(spec.Field)}, spec.Aliases...)
		for _, name := range names {
			key := normalizeName(name)
			if prev, ok := s.index[key]; ok {
				return nil, core.NewSchemaError(string(spec.Field),
					"name "+name+" already used by "+string(s.specs[prev].Field))
			}
			s.index[key] = i
		}
	}
	return s, nil
}

// MustSchema is NewSchema for package-level schemas; it panics on error
func MustSchema(specs []FieldSpec) *Schema {
	s, err := NewSchema(specs)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of fields
func (s *Schema) Len() int { return len(s.specs) }

// Fields returns field names in training order
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.specs))
	for i, spec := range s.specs {
		out[i] = spec.Field
	}
	return out
}

// Specs returns a copy of the field specs
func (s *Schema) Specs() []FieldSpec {
	out := make([]FieldSpec, len(s.specs))
	copy(out, s.specs)
	return out
}

// Spec looks up the spec for a canonical field
func (s *Schema) Spec(f Field) (FieldSpec, bool) {
	i, ok := s.index[normalizeName(string(f))]
	if !ok || s.specs[i].Field != f {
		return FieldSpec{}, false
	}
	return s.specs[i], true
}

// Resolve maps a column name or alias, case-insensitively, to its field
func (s *Schema) Resolve(name string) (Field, error) {
	i, ok := s.index[normalizeName(name)]
	if !ok {
		return "", core.NewUnknownFieldError(name)
	}
	return s.specs[i].Field, nil
}

// RuleFor returns the cleaning rule for any field; unknown fields pass through
func (s *Schema) RuleFor(f Field) Rule {
	if spec, ok := s.Spec(f); ok {
		return spec.Rule
	}
	return PassThroughRule
}

// Validate is the optional strict pre-check: every present value must lie in
// its field's declared raw domain. Missing values are accepted.
func (s *Schema) Validate(raw RawRecord) error {
	var errs []error
	for _, spec := range s.specs {
		if spec.Domain.IsEmpty() {
			continue
		}
		x, ok := raw[spec.Field].Float64()
		if !ok {
			continue
		}
		if !spec.Domain.Contains(x) {
			errs = append(errs, core.NewDomainError(string(spec.Field), x, spec.Domain.String()))
		}
	}
	return errors.Join(errs...)
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

var (
	yesNo       = CodeSet(1, 2).With(7, 8, 9)
	defaultSpec = []FieldSpec{
		{Field: FieldSex, Aliases: []string{"SEX"}, Rule: PassThroughRule, Domain: CodeSet(1, 2),
			Description: "Sex (1 male, 2 female)"},
		{Field: FieldAge, Aliases: []string{"AGE", "AGE80"}, Rule: PassThroughRule, Domain: IntRange(18, 80),
			Description: "Age in years, collapsed above 80"},
		{Field: FieldMarital, Rule: OrdinalSentinelRule, Domain: IntRange(1, 6).With(7, 8, 9),
			Description: "Marital status"},
		{Field: FieldEmploy, Aliases: []string{"EMPLOY"}, Rule: EmploymentRule, Domain: IntRange(1, 8).With(9),
			Description: "Employment status"},
		{Field: FieldBMI, Aliases: []string{"BMI_SCALED", "BMI5"}, Rule: BMIRule,
			Domain:      RealRange(1, 9999).With(77700, 99900),
			Description: "Body mass index times 100"},
		{Field: FieldGenHealth, Rule: OrdinalSentinelRule, Domain: IntRange(1, 5).With(7, 8, 9),
			Description: "Self-rated general health"},
		{Field: FieldPhysDays, Aliases: []string{"PHYS14D"}, Rule: OrdinalSentinelRule, Domain: IntRange(1, 3).With(7, 8, 9),
			Description: "Days of poor physical health, 3 levels"},
		{Field: FieldMentDays, Aliases: []string{"MENT14D"}, Rule: OrdinalSentinelRule, Domain: IntRange(1, 3).With(7, 8, 9),
			Description: "Days of poor mental health, 3 levels"},
		{Field: FieldDepression, Rule: OrdinalSentinelRule, Domain: yesNo,
			Description: "Ever told depressive disorder"},
		{Field: FieldPoorHealth, Rule: PoorHealthDaysRule, Domain: IntRange(0, 30).With(77, 88, 99),
			Description: "Days poor health limited usual activities"},
		{Field: FieldExercise, Rule: OrdinalSentinelRule, Domain: yesNo,
			Description: "Any exercise in past month"},
		{Field: FieldSmoke100, Rule: OrdinalSentinelRule, Domain: yesNo,
			Description: "Smoked at least 100 cigarettes"},
		{Field: FieldHeartDisease, Rule: OrdinalSentinelRule, Domain: yesNo,
			Description: "Ever told coronary heart disease"},
		{Field: FieldAsthma, Aliases: []string{"ASTHMS1"}, Rule: OrdinalSentinelRule, Domain: IntRange(1, 3).With(7, 8, 9),
			Description: "Asthma status"},
		{Field: FieldDiabetes, Rule: OrdinalSentinelRule, Domain: IntRange(1, 4).With(7, 8, 9),
			Description: "Diabetes status"},
		{Field: FieldDiffWalk, Rule: OrdinalSentinelRule, Domain: yesNo,
			Description: "Serious difficulty walking"},
		{Field: FieldArthritis, Rule: OrdinalSentinelRule, Domain: yesNo,
			Description: "Ever told arthritis"},
		{Field: FieldKidney, Rule: OrdinalSentinelRule, Domain: yesNo,
			Description: "Ever told kidney disease"},
		{Field: FieldSkinCancer, Rule: OrdinalSentinelRule, Domain: yesNo,
			Description: "Ever told non-melanoma skin cancer"},
		{Field: FieldOtherCancer, Rule: OrdinalSentinelRule, Domain: yesNo,
			Description: "Ever told melanoma or other cancer"},
	}
	defaultSchema = MustSchema(defaultSpec)
)

// DefaultSchema is the skin-cancer survey schema in training column order
func DefaultSchema() *Schema {
	return defaultSchema
}
