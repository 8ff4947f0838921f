package fields

import (
	"errors"
	"fmt"
	"strconv"
)

// FailureKind discriminates the reasons a value can be rejected.
type FailureKind string

const (
	FailureNullNotAllowed    FailureKind = "null_not_allowed"
	FailureTypeMismatch      FailureKind = "type_mismatch"
	FailureOutOfBounds       FailureKind = "out_of_bounds"
	FailureUnknownAttribute  FailureKind = "unknown_attribute"
	FailureUnexpectedKeyword FailureKind = "unexpected_keyword"
)

// ValidationFailure reports the first rule a value violated. Field is always
// the bound name of the innermost violated field, never the enclosing
// container's.
type ValidationFailure struct {
	Kind     FailureKind
	Field    string
	Expected string
	Actual   string
	Value    any
	Min      *float64
	Max      *float64
}

// Error renders a human-readable description of the failure.
func (e *ValidationFailure) Error() string {
	switch e.Kind {
	case FailureNullNotAllowed:
		return fmt.Sprintf("field %q: value cannot be null", e.Field)
	case FailureTypeMismatch:
		return fmt.Sprintf("field %q: expecting %s, got %s", e.Field, e.Expected, e.Actual)
	case FailureOutOfBounds:
		return fmt.Sprintf("field %q: value %v outside bounds %s", e.Field, e.Value, formatBounds(e.Min, e.Max))
	case FailureUnknownAttribute:
		return fmt.Sprintf("attribute %q is not part of the schema", e.Field)
	case FailureUnexpectedKeyword:
		return fmt.Sprintf("%q is not a declared field", e.Field)
	default:
		return fmt.Sprintf("field %q: validation failed", e.Field)
	}
}

// IsFailure reports whether err is a ValidationFailure of the given kind.
func IsFailure(err error, kind FailureKind) bool {
	var failure *ValidationFailure
	if !errors.As(err, &failure) {
		return false
	}
	return failure.Kind == kind
}

// AsFailure unwraps err into a ValidationFailure when possible.
func AsFailure(err error) (*ValidationFailure, bool) {
	var failure *ValidationFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

// NewUnknownAttribute builds the failure raised when an instance carries a
// name absent from its schema while the unknown-data policy forbids it.
func NewUnknownAttribute(name string) *ValidationFailure {
	return &ValidationFailure{Kind: FailureUnknownAttribute, Field: name}
}

// NewUnexpectedKeyword builds the failure raised when construction receives a
// name absent from the schema.
func NewUnexpectedKeyword(name string) *ValidationFailure {
	return &ValidationFailure{Kind: FailureUnexpectedKeyword, Field: name}
}

func newNullFailure(field string) *ValidationFailure {
	return &ValidationFailure{Kind: FailureNullNotAllowed, Field: field}
}

func newTypeFailure(field, expected, actual string, value any) *ValidationFailure {
	return &ValidationFailure{
		Kind:     FailureTypeMismatch,
		Field:    field,
		Expected: expected,
		Actual:   actual,
		Value:    value,
	}
}

func newBoundsFailure(field string, value any, min, max *float64) *ValidationFailure {
	return &ValidationFailure{
		Kind:  FailureOutOfBounds,
		Field: field,
		Value: value,
		Min:   min,
		Max:   max,
	}
}

func formatBounds(min, max *float64) string {
	lo, hi := "-inf", "+inf"
	if min != nil {
		lo = strconv.FormatFloat(*min, 'g', -1, 64)
	}
	if max != nil {
		hi = strconv.FormatFloat(*max, 'g', -1, 64)
	}
	return "[" + lo + ", " + hi + "]"
}
