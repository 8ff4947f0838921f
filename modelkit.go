// Package modelkit wires the public contracts in pkg/ to their internal
// implementations. Most programs only need ImportSchemas to turn an OpenAPI
// or JSON Schema document into validated model schemas, or the pkg/model and
// pkg/fields packages directly when declaring schemas in code.
package modelkit

import (
	"context"

	internalImporter "github.com/goliatone/go-modelkit/internal/openapi/importer"
	internalLoader "github.com/goliatone/go-modelkit/internal/openapi/loader"
	"github.com/goliatone/go-modelkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelkit/pkg/openapi"
)

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewImporter constructs a schema importer backed by the internal
// implementation.
func NewImporter(options ...pkgopenapi.ImporterOption) pkgopenapi.Importer {
	cfg := pkgopenapi.NewImporterOptions(options...)
	return internalImporter.New(cfg)
}

// ImportSchemas loads the schema document behind source and imports every
// component schema as a resolved model schema, keyed by component name. It is
// the simplest entry point for callers that just want schemas to validate
// payloads against.
func ImportSchemas(ctx context.Context, source pkgopenapi.Source, loaderOptions []pkgopenapi.LoaderOption, importerOptions ...pkgopenapi.ImporterOption) (map[string]*model.Schema, error) {
	loader := NewLoader(loaderOptions...)
	doc, err := loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	return NewImporter(importerOptions...).Import(ctx, doc)
}

// ImportDocument imports schemas from a pre-loaded document, bypassing the
// loader stage.
func ImportDocument(ctx context.Context, doc pkgopenapi.Document, options ...pkgopenapi.ImporterOption) (map[string]*model.Schema, error) {
	return NewImporter(options...).Import(ctx, doc)
}
