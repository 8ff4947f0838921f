package model

import (
	"github.com/goliatone/go-modelkit/pkg/fields"
)

// Materialize imports a decoded JSON/YAML mapping like FromMap, but first
// converts nested plain maps into instances of the model each ModelField
// expects, recursing through list and dict validators. Values that are not
// plain maps pass through verbatim and surface as type failures when Validate
// runs, exactly as they would under FromMap.
func Materialize(schema *Schema, m map[string]any) *Instance {
	if m == nil {
		return schema.FromMap(nil)
	}
	converted := make(map[string]any, len(m))
	for key, value := range m {
		if field, ok := schema.fields[key]; ok {
			converted[key] = materializeValue(field, value)
		} else {
			converted[key] = value
		}
	}
	return schema.FromMap(converted)
}

func materializeValue(field fields.Field, value any) any {
	switch f := field.(type) {
	case *fields.ModelField:
		nested, ok := value.(map[string]any)
		if !ok {
			return value
		}
		schema, ok := f.Model().(*Schema)
		if !ok {
			return value
		}
		return Materialize(schema, nested)
	case *fields.ListField:
		if f.Of() == nil {
			return value
		}
		items, ok := value.([]any)
		if !ok {
			return value
		}
		converted := make([]any, len(items))
		for idx, item := range items {
			converted[idx] = materializeValue(f.Of(), item)
		}
		return converted
	case *fields.DictField:
		if f.OfValue() == nil {
			return value
		}
		entries, ok := value.(map[string]any)
		if !ok {
			return value
		}
		converted := make(map[string]any, len(entries))
		for key, entry := range entries {
			converted[key] = materializeValue(f.OfValue(), entry)
		}
		return converted
	default:
		return value
	}
}
