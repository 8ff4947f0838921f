package openapi

import (
	"context"

	"github.com/goliatone/go-modelkit/pkg/model"
)

// Importer turns a loaded document's component schemas into resolved model
// schemas, keyed by component name. Implementations live under
// internal/openapi but satisfy this contract.
type Importer interface {
	Import(ctx context.Context, doc Document) (map[string]*model.Schema, error)
}

// ImporterOptions configures schema import behaviour.
type ImporterOptions struct {
	// ResolveReferences enables resolution of external $ref targets. Internal
	// component references always resolve.
	ResolveReferences bool

	// AllowPartialDocuments skips the "no components" error for documents
	// that only carry paths or metadata.
	AllowPartialDocuments bool
}

// ImporterOption mutates ImporterOptions prior to construction.
type ImporterOption func(*ImporterOptions)

// WithReferenceResolution toggles external $ref resolution.
func WithReferenceResolution(enabled bool) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments permits documents that declare no component schemas.
func WithPartialDocuments() ImporterOption {
	return func(opts *ImporterOptions) {
		opts.AllowPartialDocuments = true
	}
}

// NewImporterOptions applies a set of ImporterOption values and returns the
// resulting configuration.
func NewImporterOptions(options ...ImporterOption) ImporterOptions {
	cfg := ImporterOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
