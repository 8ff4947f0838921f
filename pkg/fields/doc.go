// Package fields defines the validation rule descriptors a model schema is
// composed of. Each variant checks one data shape: scalars (String, Bool,
// Numeric, Integral, Any), containers that delegate to child validators
// (List, Dict), and nested models (Model). Every variant applies the shared
// base rule as its final check: nullability first, then the type constraint.
// Variant rules (bounds, element validation) run before the base check so
// their more specific failures are never masked by a generic one.
//
// Fields are immutable after construction except for the name, which the
// schema engine in pkg/model binds at definition time. A single field value
// can therefore be shared by many instances and goroutines once its schema
// is defined.
package fields
