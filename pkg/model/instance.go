package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-modelkit/pkg/fields"
)

// Instance is one model value: an insertion-ordered mapping from attribute
// name to an arbitrary value. Unknown names (present on the instance, absent
// from the schema) are representable and round-trippable; they are only
// rejected when Validate runs with unknown data disallowed. An instance may
// transiently hold invalid data; nothing constrains a value until Validate
// is called. Storage is private to the instance and assumes a single writer.
type Instance struct {
	schema *Schema
	order  []string
	values map[string]any
}

// New constructs an instance from named values. Every supplied name must be a
// declared field; an unrecognized name fails with an UnexpectedKeyword
// failure (construction is always strict, unlike FromMap). Every declared
// field ends up initialized, to the supplied value or to null. No validation
// is performed.
func (s *Schema) New(values map[string]any) (*Instance, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := s.fields[key]; !ok {
			return nil, fields.NewUnexpectedKeyword(key)
		}
	}

	inst := s.empty()
	for _, key := range keys {
		inst.values[key] = values[key]
	}
	return inst, nil
}

// MustNew panics on construction failure. Useful for tests and fixtures.
func (s *Schema) MustNew(values map[string]any) *Instance {
	inst, err := s.New(values)
	if err != nil {
		panic(err)
	}
	return inst
}

// FromMap imports every key of m verbatim, including keys absent from the
// schema, which are carried as unknown attributes. Declared fields missing
// from m are initialized to null. No validation is performed; malformed
// external data is captured as-is so Validate can report on it later.
func (s *Schema) FromMap(m map[string]any) *Instance {
	inst := s.empty()

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		inst.Set(key, m[key])
	}
	return inst
}

// empty returns an instance with every declared field initialized to null.
func (s *Schema) empty() *Instance {
	inst := &Instance{
		schema: s,
		order:  make([]string, 0, len(s.order)),
		values: make(map[string]any, len(s.order)),
	}
	for _, name := range s.order {
		inst.order = append(inst.order, name)
		inst.values[name] = nil
	}
	return inst
}

// Schema returns the model schema shared by all instances of this model.
func (i *Instance) Schema() *Schema {
	return i.schema
}

// ModelSchema satisfies fields.ModelInstance for nested model validation.
func (i *Instance) ModelSchema() fields.ModelType {
	return i.schema
}

// Get returns the value held under name and whether the name is present.
func (i *Instance) Get(name string) (any, bool) {
	value, ok := i.values[name]
	return value, ok
}

// Has reports whether the instance holds a value under name.
func (i *Instance) Has(name string) bool {
	_, ok := i.values[name]
	return ok
}

// Set stores a value under name. Names absent from the schema are accepted
// and become unknown attributes.
func (i *Instance) Set(name string, value any) {
	if _, exists := i.values[name]; !exists {
		i.order = append(i.order, name)
	}
	i.values[name] = value
}

// ToMap returns a structural snapshot of every name currently held on the
// instance, declared and unknown, mapped to its current value.
func (i *Instance) ToMap() map[string]any {
	out := make(map[string]any, len(i.order))
	for _, name := range i.order {
		out[name] = i.values[name]
	}
	return out
}

// Validate checks the instance against its schema using the model's default
// unknown-attribute policy. It satisfies fields.ModelInstance so nested
// ModelField validation delegates here.
func (i *Instance) Validate() error {
	return i.validate(i.schema.allowUnknown)
}

// ValidateWith checks the instance with an explicit unknown-attribute policy,
// overriding the model default.
func (i *Instance) ValidateWith(allowUnknown bool) error {
	return i.validate(allowUnknown)
}

// validate applies the unknown-attribute policy first, then walks the field
// table in declaration order validating each field's current value. The first
// violation aborts and propagates; failures are never aggregated. Validation
// has no side effect on instance state.
func (i *Instance) validate(allowUnknown bool) error {
	if !allowUnknown {
		for _, name := range i.order {
			if _, declared := i.schema.fields[name]; !declared {
				return fields.NewUnknownAttribute(name)
			}
		}
	}
	for _, name := range i.schema.order {
		if err := i.schema.fields[name].Validate(i.values[name]); err != nil {
			return err
		}
	}
	return nil
}

// String renders a debug form: ModelName(field = value, ...).
func (i *Instance) String() string {
	var sb strings.Builder
	sb.WriteString(i.schema.name)
	sb.WriteByte('(')
	for idx, name := range i.order {
		if idx > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s = %#v", name, i.values[name])
	}
	sb.WriteByte(')')
	return sb.String()
}
