package model_test

import (
	"testing"

	"github.com/goliatone/go-modelkit/pkg/fields"
	"github.com/goliatone/go-modelkit/pkg/model"
)

func TestDefineBindsFieldNames(t *testing.T) {
	name := fields.String()
	age := fields.Integral()

	schema, err := model.Define("Person",
		model.WithField("name", name),
		model.WithField("age", age),
	)
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	if got := name.Name(); got != "name" {
		t.Errorf("expected field bound to %q, got %q", "name", got)
	}
	if got := age.Name(); got != "age" {
		t.Errorf("expected field bound to %q, got %q", "age", got)
	}
	if schema.Len() != 2 {
		t.Errorf("expected 2 fields, got %d", schema.Len())
	}
}

func TestDefineRejectsRebinding(t *testing.T) {
	shared := fields.String()
	if _, err := model.Define("A", model.WithField("first", shared)); err != nil {
		t.Fatalf("define A: %v", err)
	}
	if _, err := model.Define("B", model.WithField("second", shared)); err == nil {
		t.Fatal("expected rebinding error, got nil")
	}
}

func TestDefineValidation(t *testing.T) {
	if _, err := model.Define(""); err == nil {
		t.Error("expected error for empty model name")
	}
	if _, err := model.Define("M", model.WithField("", fields.String())); err == nil {
		t.Error("expected error for empty field name")
	}
	if _, err := model.Define("M", model.WithField("x", nil)); err == nil {
		t.Error("expected error for nil field")
	}
	if _, err := model.Define("M", model.WithParents(nil)); err == nil {
		t.Error("expected error for nil parent")
	}
}

func TestInheritancePrecedence(t *testing.T) {
	a := model.MustDefine("A", model.WithField("a", fields.String()))
	b := model.MustDefine("B", model.WithField("a", fields.Integral()))

	// Earlier-listed parent wins a name conflict.
	c := model.MustDefine("C", model.WithParents(a, b))
	field, ok := c.Field("a")
	if !ok {
		t.Fatal("expected inherited field a")
	}
	if _, isString := field.(*fields.StringField); !isString {
		t.Fatalf("expected StringField from earlier parent, got %T", field)
	}

	// Own declaration overrides every ancestor.
	d := model.MustDefine("D",
		model.WithParents(c),
		model.WithField("a", fields.Integral()),
	)
	field, _ = d.Field("a")
	if _, isIntegral := field.(*fields.IntegralField); !isIntegral {
		t.Fatalf("expected own IntegralField to win, got %T", field)
	}
}

func TestInheritanceMergesDistinctFields(t *testing.T) {
	base := model.MustDefine("Base",
		model.WithField("id", fields.Integral()),
	)
	child := model.MustDefine("Child",
		model.WithParents(base),
		model.WithField("name", fields.String()),
	)

	if child.Len() != 2 {
		t.Fatalf("expected 2 fields, got %d", child.Len())
	}
	specs := child.Fields()
	if specs[0].Name != "id" || specs[1].Name != "name" {
		t.Fatalf("unexpected field order: %v, %v", specs[0].Name, specs[1].Name)
	}

	// Inherited field values are shared with the parent, not copied.
	parentField, _ := base.Field("id")
	childField, _ := child.Field("id")
	if parentField != childField {
		t.Fatal("expected inherited field to be shared")
	}
}

func TestAttrsPassThrough(t *testing.T) {
	schema := model.MustDefine("Configured",
		model.WithField("name", fields.String()),
		model.WithAttr("collection", "configured_things"),
	)

	if _, ok := schema.Field("collection"); ok {
		t.Fatal("attr must not join the field table")
	}
	value, ok := schema.Attr("collection")
	if !ok || value != "configured_things" {
		t.Fatalf("expected attr to pass through, got %v (%v)", value, ok)
	}
}
