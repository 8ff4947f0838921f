package model

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-modelkit/pkg/fields"
)

var errSchemaNameMissing = errors.New("model: schema name is required")

// FieldSpec pairs a resolved field with its bound name, in field-table order.
type FieldSpec struct {
	Name  string
	Field fields.Field
}

// Schema is the resolved field table for one model: a mapping from field name
// to its validator, built once by Define and never mutated afterwards. A
// schema is safe for unlimited concurrent readers; redefining a model means
// calling Define again, not changing an existing schema.
type Schema struct {
	name         string
	fields       map[string]fields.Field
	order        []string
	allowUnknown bool
	attrs        map[string]any
}

// DefineOption configures schema resolution.
type DefineOption func(*defineConfig)

type defineConfig struct {
	parents      []*Schema
	fieldOrder   []string
	fields       map[string]fields.Field
	allowUnknown *bool
	attrs        map[string]any
}

// WithParents declares ancestor schemas. Ancestors merge in reverse of the
// declaration order, so when two parents declare the same field name the
// parent listed earlier wins. Own WithField declarations always override any
// inherited entry regardless of ancestor order.
func WithParents(parents ...*Schema) DefineOption {
	return func(cfg *defineConfig) {
		cfg.parents = append(cfg.parents, parents...)
	}
}

// WithField declares a field under the given name.
func WithField(name string, field fields.Field) DefineOption {
	return func(cfg *defineConfig) {
		if cfg.fields == nil {
			cfg.fields = make(map[string]fields.Field)
		}
		if _, exists := cfg.fields[name]; !exists {
			cfg.fieldOrder = append(cfg.fieldOrder, name)
		}
		cfg.fields[name] = field
	}
}

// WithAllowUnknown sets the per-model default for the unknown-attribute
// policy applied by Validate. The default is true: unknown data passes unless
// a caller explicitly disallows it.
func WithAllowUnknown(allow bool) DefineOption {
	return func(cfg *defineConfig) {
		value := allow
		cfg.allowUnknown = &value
	}
}

// WithAttr attaches a non-field class-level declaration. Attrs pass through
// untouched and are not part of the field table.
func WithAttr(key string, value any) DefineOption {
	return func(cfg *defineConfig) {
		if cfg.attrs == nil {
			cfg.attrs = make(map[string]any)
		}
		cfg.attrs[key] = value
	}
}

// Define resolves a set of field declarations, possibly contributed by
// ancestor schemas, into an immutable per-model field table. It binds each
// directly declared field's name, which is why a field value may not be
// declared under two different names.
func Define(name string, options ...DefineOption) (*Schema, error) {
	if name == "" {
		return nil, errSchemaNameMissing
	}

	cfg := defineConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	schema := &Schema{
		name:         name,
		fields:       make(map[string]fields.Field),
		allowUnknown: true,
	}
	if cfg.allowUnknown != nil {
		schema.allowUnknown = *cfg.allowUnknown
	}
	if len(cfg.attrs) > 0 {
		schema.attrs = make(map[string]any, len(cfg.attrs))
		for key, value := range cfg.attrs {
			schema.attrs[key] = value
		}
	}

	// Merge ancestors right to left so fields from earlier-listed parents
	// overwrite those from later-listed ones. Inherited fields are already
	// bound, so they carry straight over.
	for i := len(cfg.parents) - 1; i >= 0; i-- {
		parent := cfg.parents[i]
		if parent == nil {
			return nil, fmt.Errorf("model %q: parent schema is nil", name)
		}
		for _, fieldName := range parent.order {
			schema.set(fieldName, parent.fields[fieldName])
		}
	}

	// Own declarations win over anything inherited.
	for _, fieldName := range cfg.fieldOrder {
		if fieldName == "" {
			return nil, fmt.Errorf("model %q: field name is required", name)
		}
		field := cfg.fields[fieldName]
		if field == nil {
			return nil, fmt.Errorf("model %q: field %q is nil", name, fieldName)
		}
		if bound := field.Name(); bound != fields.UnboundName && bound != fieldName {
			return nil, fmt.Errorf("model %q: field %q is already bound to %q", name, fieldName, bound)
		}
		field.Bind(fieldName)
		schema.set(fieldName, field)
	}

	return schema, nil
}

// MustDefine panics if the schema cannot be resolved. Useful for package-level
// model declarations and tests.
func MustDefine(name string, options ...DefineOption) *Schema {
	schema, err := Define(name, options...)
	if err != nil {
		panic(err)
	}
	return schema
}

// set records a field under name, keeping the position of the name's first
// appearance so field-table order stays deterministic across overrides.
func (s *Schema) set(name string, field fields.Field) {
	if _, exists := s.fields[name]; !exists {
		s.order = append(s.order, name)
	}
	s.fields[name] = field
}

// Name returns the model name. It also satisfies fields.ModelType so a
// ModelField can reference this schema directly.
func (s *Schema) Name() string {
	return s.name
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (fields.Field, bool) {
	field, ok := s.fields[name]
	return field, ok
}

// Fields returns the resolved field table in declaration order.
func (s *Schema) Fields() []FieldSpec {
	specs := make([]FieldSpec, 0, len(s.order))
	for _, name := range s.order {
		specs = append(specs, FieldSpec{Name: name, Field: s.fields[name]})
	}
	return specs
}

// Len reports the number of declared fields.
func (s *Schema) Len() int {
	return len(s.order)
}

// AllowUnknown reports the model's default unknown-attribute policy.
func (s *Schema) AllowUnknown() bool {
	return s.allowUnknown
}

// Attr returns a non-field class-level declaration by key.
func (s *Schema) Attr(key string) (any, bool) {
	value, ok := s.attrs[key]
	return value, ok
}
