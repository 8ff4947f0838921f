package fields

import (
	"encoding/json"
	"strconv"
	"strings"
)

var (
	stringMatcher = &matcher{desc: "string", fn: func(v any) bool {
		_, ok := v.(string)
		return ok
	}}
	boolMatcher = &matcher{desc: "bool", fn: func(v any) bool {
		_, ok := v.(bool)
		return ok
	}}
	numericMatcher  = &matcher{desc: "number", fn: isNumeric}
	integralMatcher = &matcher{desc: "integer", fn: isIntegral}
)

// StringField accepts string values.
type StringField struct {
	base
}

// String constructs a StringField.
func String(options ...Option) *StringField {
	cfg := newConfig(options)
	return &StringField{base: newBase(stringMatcher, cfg)}
}

func (f *StringField) Validate(value any) error {
	return f.check(value)
}

// BoolField accepts boolean values.
type BoolField struct {
	base
}

// Bool constructs a BoolField.
func Bool(options ...Option) *BoolField {
	cfg := newConfig(options)
	return &BoolField{base: newBase(boolMatcher, cfg)}
}

func (f *BoolField) Validate(value any) error {
	return f.check(value)
}

// AnyField accepts any type; only the nullability rule applies.
type AnyField struct {
	base
}

// Any constructs an AnyField.
func Any(options ...Option) *AnyField {
	cfg := newConfig(options)
	return &AnyField{base: newBase(nil, cfg)}
}

func (f *AnyField) Validate(value any) error {
	return f.check(value)
}

// NumericField accepts integer and floating point values, with optional
// inclusive bounds. Booleans classify as numeric for backward compatibility
// with data produced by systems that store flags as 0/1.
type NumericField struct {
	base
	min *float64
	max *float64
}

// Numeric constructs a NumericField. Bounds are set via WithMin, WithMax, or
// WithBounds; a missing side is unbounded.
func Numeric(options ...Option) *NumericField {
	cfg := newConfig(options)
	return &NumericField{
		base: newBase(numericMatcher, cfg),
		min:  cfg.min,
		max:  cfg.max,
	}
}

// Min returns the inclusive lower bound, nil when unbounded.
func (f *NumericField) Min() *float64 { return f.min }

// Max returns the inclusive upper bound, nil when unbounded.
func (f *NumericField) Max() *float64 { return f.max }

func (f *NumericField) Validate(value any) error {
	if err := f.checkBounds(value); err != nil {
		return err
	}
	return f.check(value)
}

// checkBounds reports OutOfBounds for non-null, correctly typed values that
// fall outside the configured range. It runs before the base check so a
// bounds violation is never masked by a generic failure.
func (f *NumericField) checkBounds(value any) error {
	if f.min == nil && f.max == nil {
		return nil
	}
	if IsNull(value) || !f.matches(value) {
		return nil
	}
	n, ok := asFloat(value)
	if !ok {
		return nil
	}
	if (f.min != nil && n < *f.min) || (f.max != nil && n > *f.max) {
		return newBoundsFailure(f.name, value, f.min, f.max)
	}
	return nil
}

// IntegralField accepts integer values only: any float, even a numerically
// integral one like 3.0, is rejected. Bounds semantics match NumericField.
type IntegralField struct {
	NumericField
}

// Integral constructs an IntegralField.
func Integral(options ...Option) *IntegralField {
	cfg := newConfig(options)
	return &IntegralField{NumericField: NumericField{
		base: newBase(integralMatcher, cfg),
		min:  cfg.min,
		max:  cfg.max,
	}}
}

func (f *IntegralField) Validate(value any) error {
	if err := f.checkBounds(value); err != nil {
		return err
	}
	return f.check(value)
}

func isNumeric(v any) bool {
	switch n := v.(type) {
	case bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	default:
		return false
	}
}

func isIntegral(v any) bool {
	switch n := v.(type) {
	case bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		// Decoders hand integers back as json.Number; accept only values
		// written without a fractional or exponent form.
		if strings.ContainsAny(n.String(), ".eE") {
			return false
		}
		_, err := strconv.ParseInt(n.String(), 10, 64)
		return err == nil
	default:
		return false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
