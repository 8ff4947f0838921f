package fields

import (
	"fmt"
	"reflect"
)

// UnboundName is the sentinel a field reports until a schema binds it.
const UnboundName = "<unbound>"

// Field is the validation contract shared by every variant. Validate returns
// nil when the value conforms and a *ValidationFailure otherwise; it never
// mutates the value. Fields are immutable after construction except for the
// name, which the schema engine binds once at definition time.
type Field interface {
	Validate(value any) error
	Name() string
	Nullable() bool
	Bind(name string)
}

// ModelType identifies a model schema without depending on the model package.
// Two fields expect the same model iff they hold the same ModelType value.
type ModelType interface {
	Name() string
}

// ModelInstance is the view of a model instance a ModelField needs: its
// schema identity and a default-policy validation entry point.
type ModelInstance interface {
	ModelSchema() ModelType
	Validate() error
}

// Option configures a field variant at construction time. Options that do not
// apply to the variant being built are ignored.
type Option func(*config)

type config struct {
	nullable bool
	min      *float64
	max      *float64
	of       Field
	ofKey    Field
	ofValue  Field
}

// Nullable marks the field as accepting the null representation.
func Nullable() Option {
	return func(cfg *config) {
		cfg.nullable = true
	}
}

// WithMin sets the inclusive lower bound for numeric variants.
func WithMin(v float64) Option {
	return func(cfg *config) {
		value := v
		cfg.min = &value
	}
}

// WithMax sets the inclusive upper bound for numeric variants.
func WithMax(v float64) Option {
	return func(cfg *config) {
		value := v
		cfg.max = &value
	}
}

// WithBounds sets both inclusive bounds for numeric variants.
func WithBounds(min, max float64) Option {
	return func(cfg *config) {
		lo, hi := min, max
		cfg.min = &lo
		cfg.max = &hi
	}
}

// Of sets the element validator for list variants.
func Of(f Field) Option {
	return func(cfg *config) {
		cfg.of = f
	}
}

// OfKey sets the key validator for dict variants.
func OfKey(f Field) Option {
	return func(cfg *config) {
		cfg.ofKey = f
	}
}

// OfValue sets the value validator for dict variants.
func OfValue(f Field) Option {
	return func(cfg *config) {
		cfg.ofValue = f
	}
}

func newConfig(options []Option) config {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// matcher pairs a type-shape predicate with its description for error
// messages. A nil matcher means the field is unconstrained.
type matcher struct {
	desc string
	fn   func(any) bool
}

// base carries the state and final null/type check every variant shares.
type base struct {
	name     string
	nullable bool
	expected *matcher
}

func newBase(expected *matcher, cfg config) base {
	return base{
		name:     UnboundName,
		nullable: cfg.nullable,
		expected: expected,
	}
}

// Name returns the name the schema engine bound, or UnboundName.
func (b *base) Name() string {
	return b.name
}

// Nullable reports whether the null representation is accepted.
func (b *base) Nullable() bool {
	return b.nullable
}

// Bind assigns the field's resolved name. Called once by the schema engine.
func (b *base) Bind(name string) {
	b.name = name
}

// check applies the base rule: nullability first, then the type constraint.
func (b *base) check(value any) error {
	if IsNull(value) {
		if b.nullable {
			return nil
		}
		return newNullFailure(b.name)
	}
	if b.expected != nil && !b.expected.fn(value) {
		return newTypeFailure(b.name, b.expected.desc, describeType(value), value)
	}
	return nil
}

// matches reports whether a non-null value satisfies the type constraint.
func (b *base) matches(value any) bool {
	return b.expected == nil || b.expected.fn(value)
}

// IsNull reports whether value is the null representation: untyped nil or a
// nil pointer/map/slice/interface/function/channel held in a non-nil any.
func IsNull(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func describeType(value any) string {
	if inst, ok := value.(ModelInstance); ok {
		if schema := inst.ModelSchema(); schema != nil {
			return schema.Name()
		}
	}
	return fmt.Sprintf("%T", value)
}
