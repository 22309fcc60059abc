package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseAssessmentID tests assessment ID parsing
func TestParseAssessmentID(t *testing.T) {
	valid := NewAssessmentID().String()

	tests := []struct {
		input    string
		hasError bool
	}{
		{valid, false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, test := range tests {
		result, err := ParseAssessmentID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError {
			if err != nil {
				t.Errorf("Unexpected error for input '%s': %v", test.input, err)
			}
			if result.String() != test.input {
				t.Errorf("Expected %s, got %s", test.input, result)
			}
		}
	}
}

// TestParseModelID tests model ID parsing
func TestParseModelID(t *testing.T) {
	if _, err := ParseModelID(""); err == nil {
		t.Error("Expected error for empty model ID")
	}
	id, err := ParseModelID("skin_cancer")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id.String() != "skin_cancer" {
		t.Errorf("Expected skin_cancer, got %s", id)
	}
}
