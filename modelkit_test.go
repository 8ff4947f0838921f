package modelkit_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-modelkit"
	"github.com/goliatone/go-modelkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelkit/pkg/openapi"
	"github.com/goliatone/go-modelkit/pkg/testsupport"
)

func TestImportSchemasEndToEnd(t *testing.T) {
	ctx := context.Background()

	schemas, err := modelkit.ImportSchemas(ctx,
		pkgopenapi.SourceFromFile(filepath.Join("testdata", "petstore.yaml")), nil)
	if err != nil {
		t.Fatalf("import schemas: %v", err)
	}

	pet, ok := schemas["Pet"]
	if !ok {
		t.Fatal("expected Pet schema")
	}

	payload := testsupport.MustLoadPayload(t, filepath.Join("testdata", "pet_payload.json"))
	inst := model.Materialize(pet, payload)
	if err := inst.Validate(); err != nil {
		t.Fatalf("payload should validate: %v", err)
	}

	// The structural snapshot matches the imported payload after nested
	// instances are flattened back to maps.
	snapshot := inst.ToMap()
	if owner, ok := snapshot["owner"].(*model.Instance); ok {
		snapshot["owner"] = owner.ToMap()
	}
	want := map[string]any{
		"name":   payload["name"],
		"age":    payload["age"],
		"weight": nil,
		"tags":   payload["tags"],
		"owner": map[string]any{
			"name":  "Ada",
			"email": nil,
		},
	}
	if diff := testsupport.CompareGolden(want, snapshot); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestImportDocument(t *testing.T) {
	doc := testsupport.MustLoadDocument(t, filepath.Join("testdata", "petstore.yaml"))

	schemas, err := modelkit.ImportDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("import document: %v", err)
	}
	if _, ok := schemas["Owner"]; !ok {
		t.Fatal("expected Owner schema")
	}
}
