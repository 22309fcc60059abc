package survey

import (
	"encoding/json"
	"sort"

	"skinrisk/domain/core"
)

// RawRecord is one respondent's answers as the survey encodes them,
// sentinel codes included. Build one per request and discard it after scoring.
type RawRecord map[Field]Value

// Set stores a numeric answer
func (r RawRecord) Set(f Field, v float64) RawRecord {
	r[f] = Number(v)
	return r
}

// SetMissing stores an explicit missing answer
func (r RawRecord) SetMissing(f Field) RawRecord {
	r[f] = Missing()
	return r
}

// RawRecordFromNames builds a record from column names or aliases.
// Names the schema does not know are kept verbatim. Two names that resolve
// to the same field fail with core.ErrDuplicateField.
func RawRecordFromNames(s *Schema, values map[string]Value) (RawRecord, error) {
	raw := make(RawRecord, len(values))
	for f, names := range ResolveNames(s, mapKeys(values)) {
		if len(names) > 1 {
			return nil, core.NewDuplicateFieldError(string(f), names)
		}
		raw[f] = values[names[0]]
	}
	return raw, nil
}

// ResolveNames groups input names by the field they resolve to. Each group
// is sorted so callers report collisions the same way every time.
func ResolveNames(s *Schema, names []string) map[Field][]string {
	groups := make(map[Field][]string, len(names))
	for _, name := range names {
		f, err := s.Resolve(name)
		if err != nil {
			f = Field(name)
		}
		groups[f] = append(groups[f], name)
	}
	for _, g := range groups {
		sort.Strings(g)
	}
	return groups
}

func mapKeys(values map[string]Value) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	return keys
}

// CleanedRecord is the cleaner's output. It is immutable: accessors copy.
type CleanedRecord struct {
	values map[Field]Value
}

// NewCleanedRecord copies values into a new record
func NewCleanedRecord(values map[Field]Value) CleanedRecord {
	m := make(map[Field]Value, len(values))
	for k, v := range values {
		m[k] = v
	}
	return CleanedRecord{values: m}
}

// Get returns a field's value; absent fields are missing
func (c CleanedRecord) Get(f Field) Value {
	return c.values[f]
}

// Has reports whether the record carries the field at all
func (c CleanedRecord) Has(f Field) bool {
	_, ok := c.values[f]
	return ok
}

// Len returns the number of fields
func (c CleanedRecord) Len() int { return len(c.values) }

// Fields returns the record's fields sorted by name
func (c CleanedRecord) Fields() []Field {
	out := make([]Field, 0, len(c.values))
	for f := range c.values {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Map returns a copy of the values
func (c CleanedRecord) Map() map[Field]Value {
	m := make(map[Field]Value, len(c.values))
	for k, v := range c.values {
		m[k] = v
	}
	return m
}

// Equal compares two records field by field
func (c CleanedRecord) Equal(other CleanedRecord) bool {
	if len(c.values) != len(other.values) {
		return false
	}
	for k, v := range c.values {
		o, ok := other.values[k]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}

// Vector lays the record out in the schema's column order
func (c CleanedRecord) Vector(s *Schema) FeatureVector {
	fields := s.Fields()
	values := make([]Value, len(fields))
	for i, f := range fields {
		values[i] = c.values[f]
	}
	return FeatureVector{Names: fields, Values: values}
}

func (c CleanedRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.values)
}

func (c *CleanedRecord) UnmarshalJSON(data []byte) error {
	var m map[Field]Value
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	c.values = m
	return nil
}

// FeatureVector is the fixed-order input handed to the classifier
type FeatureVector struct {
	Names  []Field `json:"names"`
	Values []Value `json:"values"`
}

// Floats returns the values with NaN for missing
func (fv FeatureVector) Floats() []float64 {
	out := make([]float64, len(fv.Values))
	for i, v := range fv.Values {
		out[i] = v.OrNaN()
	}
	return out
}

// MissingCount counts missing features
func (fv FeatureVector) MissingCount() int {
	n := 0
	for _, v := range fv.Values {
		if v.IsMissing() {
			n++
		}
	}
	return n
}

// Lookup finds a feature by name
func (fv FeatureVector) Lookup(f Field) (Value, bool) {
	for i, name := range fv.Names {
		if name == f {
			return fv.Values[i], true
		}
	}
	return Missing(), false
}
