package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound      = errors.New("resource not found")
	ErrModelNotFound = fmt.Errorf("%w: model", ErrNotFound)

	// Schema and input errors
	ErrInvalidSchema   = errors.New("invalid survey schema")
	ErrUnknownField    = errors.New("unknown survey field")
	ErrDuplicateField  = errors.New("survey field given more than once")
	ErrOutOfDomain     = errors.New("value outside declared raw domain")
	ErrFeatureMismatch = errors.New("model features do not match schema")
	ErrInvalidModel    = errors.New("invalid classifier model")
)

// NewSchemaError reports a schema construction failure for one field
func NewSchemaError(field string, reason string) error {
	return fmt.Errorf("%w: field %s: %s", ErrInvalidSchema, field, reason)
}

// NewDomainError reports a raw value that falls outside its field's declared domain
func NewDomainError(field string, value float64, domain string) error {
	return fmt.Errorf("%w: %s=%g not in %s", ErrOutOfDomain, field, value, domain)
}

// NewUnknownFieldError reports a name that no schema field or alias resolves
func NewUnknownFieldError(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownField, name)
}

// NewDuplicateFieldError reports input names that resolve to the same field
func NewDuplicateFieldError(field string, names []string) error {
	return fmt.Errorf("%w: %s as %s", ErrDuplicateField, field, strings.Join(names, ", "))
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrUnknownField) ||
		errors.Is(err, ErrDuplicateField) ||
		errors.Is(err, ErrOutOfDomain)
}
