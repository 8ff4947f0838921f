package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-modelkit/internal/openapi/importer"
	"github.com/goliatone/go-modelkit/pkg/fields"
	"github.com/goliatone/go-modelkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelkit/pkg/openapi"
)

const petstoreDoc = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths: {}
components:
  schemas:
    Owner:
      type: object
      required: [name]
      additionalProperties: false
      properties:
        name:
          type: string
        email:
          type: string
          nullable: true
    Pet:
      type: object
      required: [name, age]
      properties:
        name:
          type: string
        age:
          type: integer
          minimum: 0
          maximum: 25
        weight:
          type: number
          minimum: 0.1
        tags:
          type: array
          items:
            type: string
        labels:
          type: object
          additionalProperties:
            type: string
        owner:
          $ref: '#/components/schemas/Owner'
`

func importPetstore(t *testing.T) map[string]*model.Schema {
	t.Helper()

	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("petstore.yaml"), []byte(petstoreDoc))
	imp := importer.New(pkgopenapi.ImporterOptions{})
	schemas, err := imp.Import(context.Background(), doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return schemas
}

func TestImportMapsFieldVariants(t *testing.T) {
	schemas := importPetstore(t)

	pet, ok := schemas["Pet"]
	if !ok {
		t.Fatal("expected Pet schema")
	}

	cases := []struct {
		field string
		check func(fields.Field) bool
	}{
		{"name", func(f fields.Field) bool {
			_, ok := f.(*fields.StringField)
			return ok && !f.Nullable()
		}},
		{"age", func(f fields.Field) bool {
			intField, ok := f.(*fields.IntegralField)
			return ok && intField.Min() != nil && *intField.Min() == 0 &&
				intField.Max() != nil && *intField.Max() == 25
		}},
		{"weight", func(f fields.Field) bool {
			numField, ok := f.(*fields.NumericField)
			return ok && f.Nullable() && numField.Min() != nil && *numField.Min() == 0.1
		}},
		{"tags", func(f fields.Field) bool {
			listField, ok := f.(*fields.ListField)
			if !ok || listField.Of() == nil {
				return false
			}
			_, ok = listField.Of().(*fields.StringField)
			return ok
		}},
		{"labels", func(f fields.Field) bool {
			dictField, ok := f.(*fields.DictField)
			if !ok || dictField.OfValue() == nil {
				return false
			}
			_, ok = dictField.OfValue().(*fields.StringField)
			return ok
		}},
		{"owner", func(f fields.Field) bool {
			modelField, ok := f.(*fields.ModelField)
			return ok && modelField.Model() == schemas["Owner"]
		}},
	}

	for _, tc := range cases {
		field, ok := pet.Field(tc.field)
		if !ok {
			t.Errorf("expected field %q", tc.field)
			continue
		}
		if !tc.check(field) {
			t.Errorf("field %q mapped incorrectly: %T", tc.field, field)
		}
	}
}

func TestImportAdditionalPropertiesPolicy(t *testing.T) {
	schemas := importPetstore(t)

	if schemas["Owner"].AllowUnknown() {
		t.Error("additionalProperties: false should disallow unknown data")
	}
	if !schemas["Pet"].AllowUnknown() {
		t.Error("default policy should allow unknown data")
	}
}

func TestImportedSchemaValidatesPayload(t *testing.T) {
	schemas := importPetstore(t)
	pet := schemas["Pet"]

	payload := map[string]any{
		"name": "Rex",
		"age":  7,
		"tags": []any{"good", "dog"},
		"owner": map[string]any{
			"name": "Ada",
		},
	}
	if err := model.Materialize(pet, payload).Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	payload["age"] = 26
	err := model.Materialize(pet, payload).Validate()
	if !fields.IsFailure(err, fields.FailureOutOfBounds) {
		t.Fatalf("expected bounds failure, got %v", err)
	}

	payload["age"] = 7
	payload["owner"] = map[string]any{"name": "Ada", "nickname": "boss"}
	err = model.Materialize(pet, payload).Validate()
	if !fields.IsFailure(err, fields.FailureUnknownAttribute) {
		t.Fatalf("expected unknown attribute from strict nested schema, got %v", err)
	}
}

func TestImportBareJSONSchema(t *testing.T) {
	raw := []byte(`{
		"title": "Point",
		"type": "object",
		"required": ["x", "y"],
		"properties": {
			"x": {"type": "number"},
			"y": {"type": "number"}
		}
	}`)

	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("point.json"), raw)
	imp := importer.New(pkgopenapi.ImporterOptions{})
	schemas, err := imp.Import(context.Background(), doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	point, ok := schemas["Point"]
	if !ok {
		t.Fatalf("expected Point schema, got %v", schemas)
	}
	if point.Len() != 2 {
		t.Fatalf("expected 2 fields, got %d", point.Len())
	}
	inst := point.FromMap(map[string]any{"x": 1.5, "y": 2.5})
	if err := inst.Validate(); err != nil {
		t.Fatalf("valid point rejected: %v", err)
	}
}

func TestImportBareYAMLSchema(t *testing.T) {
	raw := []byte(`
title: Point
type: object
required: [x, y]
properties:
  x:
    type: number
  y:
    type: number
`)

	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("point.yaml"), raw)
	imp := importer.New(pkgopenapi.ImporterOptions{})
	schemas, err := imp.Import(context.Background(), doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, ok := schemas["Point"]; !ok {
		t.Fatalf("expected Point schema, got %v", schemas)
	}
}

func TestImportErrorsCarryDocumentSource(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("empty.yaml"), []byte("openapi: 3.0.3\ninfo:\n  title: Empty\n  version: 1.0.0\npaths: {}\n"))
	imp := importer.New(pkgopenapi.ImporterOptions{})

	_, err := imp.Import(context.Background(), doc)
	if err == nil {
		t.Fatal("expected error for document without components")
	}
	if !strings.Contains(err.Error(), "file:empty.yaml") {
		t.Fatalf("expected error to name the document source, got: %v", err)
	}
}

func TestImportRejectsRecursiveReference(t *testing.T) {
	const recursiveDoc = `
openapi: 3.0.3
info:
  title: Recursive
  version: 1.0.0
paths: {}
components:
  schemas:
    Node:
      type: object
      properties:
        next:
          $ref: '#/components/schemas/Node'
`
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("node.yaml"), []byte(recursiveDoc))
	imp := importer.New(pkgopenapi.ImporterOptions{})
	if _, err := imp.Import(context.Background(), doc); err == nil {
		t.Fatal("expected recursive reference error")
	}
}
