package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelkit/pkg/fields"
	"github.com/goliatone/go-modelkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelkit/pkg/openapi"
)

const componentRefPrefix = "#/components/schemas/"

// Importer implements pkgopenapi.Importer using kin-openapi. Component
// schemas map onto resolved model schemas: scalars become the matching field
// variants, arrays become list fields, object properties become nested model
// schemas behind model fields, and additionalProperties becomes a dict field.
type Importer struct {
	options pkgopenapi.ImporterOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Importer = (*Importer)(nil)

// New constructs an Importer with the given options.
func New(options pkgopenapi.ImporterOptions) pkgopenapi.Importer {
	return &Importer{options: options}
}

// Import converts a document's component schemas into model schemas keyed by
// component name. Documents without an OpenAPI envelope are treated as a bare
// JSON Schema and import as a single model.
func (i *Importer) Import(ctx context.Context, doc pkgopenapi.Document) (map[string]*model.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, fmt.Errorf("schema importer: %s: document payload is empty", doc.Location())
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.options.ResolveReferences,
	}

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schema importer: %s: load document: %w", doc.Location(), err)
	}

	if spec.OpenAPI == "" {
		return i.importBareSchema(doc, raw)
	}

	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		if i.options.AllowPartialDocuments {
			return map[string]*model.Schema{}, nil
		}
		return nil, fmt.Errorf("schema importer: %s: document does not declare component schemas", doc.Location())
	}

	conv := newConverter(spec.Components.Schemas)

	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	schemas := make(map[string]*model.Schema, len(names))
	for _, name := range names {
		resolved, err := conv.modelFor(name, spec.Components.Schemas[name])
		if err != nil {
			return nil, err
		}
		schemas[name] = resolved
	}
	return schemas, nil
}

// importBareSchema handles documents that are a single JSON Schema object
// rather than a full OpenAPI envelope. YAML documents are normalized to JSON
// first so both encodings of a bare schema import the same way.
func (i *Importer) importBareSchema(doc pkgopenapi.Document, raw []byte) (map[string]*model.Schema, error) {
	var schema openapi3.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		normalized, yamlErr := yamlToJSON(raw)
		if yamlErr != nil {
			return nil, fmt.Errorf("schema importer: %s: parse bare schema: %w", doc.Location(), err)
		}
		if err := json.Unmarshal(normalized, &schema); err != nil {
			return nil, fmt.Errorf("schema importer: %s: parse bare schema: %w", doc.Location(), err)
		}
	}
	if len(schema.Properties) == 0 {
		if i.options.AllowPartialDocuments {
			return map[string]*model.Schema{}, nil
		}
		return nil, fmt.Errorf("schema importer: %s: bare schema declares no properties", doc.Location())
	}

	name := schema.Title
	if name == "" {
		name = "Schema"
	}
	conv := newConverter(nil)
	resolved, err := conv.modelFor(name, &openapi3.SchemaRef{Value: &schema})
	if err != nil {
		return nil, err
	}
	return map[string]*model.Schema{name: resolved}, nil
}

// converter builds model schemas out of component refs, caching by name so a
// $ref shared by two components resolves to the same schema identity.
type converter struct {
	components map[string]*openapi3.SchemaRef
	built      map[string]*model.Schema
	building   map[string]bool
}

func newConverter(components map[string]*openapi3.SchemaRef) *converter {
	return &converter{
		components: components,
		built:      make(map[string]*model.Schema),
		building:   make(map[string]bool),
	}
}

func (c *converter) modelFor(name string, ref *openapi3.SchemaRef) (*model.Schema, error) {
	if resolved, ok := c.built[name]; ok {
		return resolved, nil
	}
	if c.building[name] {
		// Schemas form a tree; a self-referencing component cannot resolve
		// to a finite field table.
		return nil, fmt.Errorf("schema importer: recursive reference to %q", name)
	}
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schema importer: component %q has no schema", name)
	}
	c.building[name] = true
	defer delete(c.building, name)

	src := ref.Value
	required := make(map[string]bool, len(src.Required))
	for _, propName := range src.Required {
		required[propName] = true
	}

	options := make([]model.DefineOption, 0, len(src.Properties)+1)

	propNames := make([]string, 0, len(src.Properties))
	for propName := range src.Properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	for _, propName := range propNames {
		field, err := c.fieldFor(name+"."+propName, src.Properties[propName], required[propName])
		if err != nil {
			return nil, err
		}
		options = append(options, model.WithField(propName, field))
	}

	if src.AdditionalProperties.Has != nil && !*src.AdditionalProperties.Has {
		options = append(options, model.WithAllowUnknown(false))
	}
	if src.Title != "" {
		options = append(options, model.WithAttr("title", src.Title))
	}
	if src.Description != "" {
		options = append(options, model.WithAttr("description", src.Description))
	}

	resolved, err := model.Define(name, options...)
	if err != nil {
		return nil, fmt.Errorf("schema importer: component %q: %w", name, err)
	}
	c.built[name] = resolved
	return resolved, nil
}

// fieldFor maps one property schema to a field variant. A property is
// nullable when the source marks it nullable or when it is not required:
// optional properties initialize to null on import and must not fail for
// being absent.
func (c *converter) fieldFor(owner string, ref *openapi3.SchemaRef, required bool) (fields.Field, error) {
	if ref == nil {
		return nil, fmt.Errorf("schema importer: property %q has no schema", owner)
	}

	if componentName, ok := refComponentName(ref.Ref); ok {
		target, err := c.modelFor(componentName, c.components[componentName])
		if err != nil {
			return nil, err
		}
		return fields.Model(target, nullableOptions(ref.Value, required)...), nil
	}

	src := ref.Value
	if src == nil {
		return nil, fmt.Errorf("schema importer: property %q has no schema", owner)
	}

	options := nullableOptions(src, required)

	switch firstType(src.Type) {
	case "string":
		return fields.String(options...), nil
	case "boolean":
		return fields.Bool(options...), nil
	case "integer":
		return fields.Integral(append(options, boundsOptions(src)...)...), nil
	case "number":
		return fields.Numeric(append(options, boundsOptions(src)...)...), nil
	case "array":
		if src.Items != nil {
			element, err := c.fieldFor(owner+"[]", src.Items, true)
			if err != nil {
				return nil, err
			}
			options = append(options, fields.Of(element))
		}
		return fields.List(options...), nil
	case "object":
		if len(src.Properties) > 0 {
			nested, err := c.modelFor(owner, &openapi3.SchemaRef{Value: src})
			if err != nil {
				return nil, err
			}
			return fields.Model(nested, options...), nil
		}
		if src.AdditionalProperties.Schema != nil {
			valueField, err := c.fieldFor(owner+".value", src.AdditionalProperties.Schema, true)
			if err != nil {
				return nil, err
			}
			options = append(options, fields.OfValue(valueField))
		}
		return fields.Dict(options...), nil
	case "":
		return fields.Any(options...), nil
	default:
		return nil, fmt.Errorf("schema importer: property %q has unsupported type %q", owner, firstType(src.Type))
	}
}

func nullableOptions(src *openapi3.Schema, required bool) []fields.Option {
	nullable := !required
	if src != nil && src.Nullable {
		nullable = true
	}
	if nullable {
		return []fields.Option{fields.Nullable()}
	}
	return nil
}

func boundsOptions(src *openapi3.Schema) []fields.Option {
	var options []fields.Option
	if src.Min != nil {
		options = append(options, fields.WithMin(*src.Min))
	}
	if src.Max != nil {
		options = append(options, fields.WithMax(*src.Max))
	}
	return options
}

func refComponentName(ref string) (string, bool) {
	if !strings.HasPrefix(ref, componentRefPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, componentRefPrefix)
	return name, name != ""
}

// yamlToJSON re-encodes a YAML mapping as JSON so it can feed the same
// openapi3.Schema decoder the JSON path uses.
func yamlToJSON(raw []byte) ([]byte, error) {
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
