package docgen

import (
	"strconv"

	"github.com/goliatone/go-modelkit/pkg/fields"
	"github.com/goliatone/go-modelkit/pkg/model"
)

// schemaView is the template-facing projection of a schema. Exported fields
// only: the template engine resolves them by reflection.
type schemaView struct {
	Name         string
	Title        string
	Description  string
	AllowUnknown bool
	Fields       []fieldView
}

type fieldView struct {
	Name     string
	Type     string
	Nullable bool
}

func (r *Renderer) schemaView(schema *model.Schema) schemaView {
	view := schemaView{
		Name:         schema.Name(),
		AllowUnknown: schema.AllowUnknown(),
	}
	if title, ok := schema.Attr("title"); ok {
		if s, ok := title.(string); ok {
			view.Title = r.sanitize(s)
		}
	}
	if description, ok := schema.Attr("description"); ok {
		if s, ok := description.(string); ok {
			view.Description = r.sanitize(s)
		}
	}
	for _, spec := range schema.Fields() {
		view.Fields = append(view.Fields, fieldView{
			Name:     spec.Name,
			Type:     describeField(spec.Field),
			Nullable: spec.Field.Nullable(),
		})
	}
	return view
}

// describeField renders a field variant as a short human-readable type
// expression, recursing through container children.
func describeField(f fields.Field) string {
	switch field := f.(type) {
	case *fields.StringField:
		return "string"
	case *fields.BoolField:
		return "bool"
	case *fields.IntegralField:
		return "integer" + boundsSuffix(field.Min(), field.Max())
	case *fields.NumericField:
		return "number" + boundsSuffix(field.Min(), field.Max())
	case *fields.ListField:
		if field.Of() != nil {
			return "list of " + describeField(field.Of())
		}
		return "list"
	case *fields.DictField:
		key, value := "any", "any"
		if field.OfKey() != nil {
			key = describeField(field.OfKey())
		}
		if field.OfValue() != nil {
			value = describeField(field.OfValue())
		}
		if key == "any" && value == "any" {
			return "dict"
		}
		return "dict of " + key + " to " + value
	case *fields.ModelField:
		if field.Model() != nil {
			return "model " + field.Model().Name()
		}
		return "model"
	case *fields.AnyField:
		return "any"
	default:
		return "field"
	}
}

func boundsSuffix(min, max *float64) string {
	if min == nil && max == nil {
		return ""
	}
	lo, hi := "-inf", "+inf"
	if min != nil {
		lo = strconv.FormatFloat(*min, 'g', -1, 64)
	}
	if max != nil {
		hi = strconv.FormatFloat(*max, 'g', -1, 64)
	}
	return " [" + lo + ", " + hi + "]"
}
