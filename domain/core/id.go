package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	AssessmentID ID
	ModelID      ID
)

func (id AssessmentID) String() string { return ID(id).String() }
func (id ModelID) String() string      { return ID(id).String() }

// NewAssessmentID creates a fresh assessment identifier
func NewAssessmentID() AssessmentID {
	return AssessmentID(NewID())
}

// ParseAssessmentID parses a string into AssessmentID
func ParseAssessmentID(s string) (AssessmentID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("assessment ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("assessment ID %q is not a UUID: %w", s, err)
	}
	return AssessmentID(s), nil
}

// ParseModelID parses a string into ModelID
func ParseModelID(s string) (ModelID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("model ID cannot be empty")
	}
	return ModelID(s), nil
}
