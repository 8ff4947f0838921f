package openapi

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader resolves a Source into a Document. Loading is offline-first: file
// and fs.FS sources always work, URL sources are refused unless the caller
// opts in to HTTP via WithHTTPClient or WithHTTPFallback. The implementation
// lives under internal/openapi; construct one through the top-level modelkit
// package.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// LoaderOptions is the resolved loader configuration.
type LoaderOptions struct {
	// FileSystem backs fs sources. Nil leaves fs sources unavailable; file
	// sources read the operating system directly either way.
	FileSystem fs.FS

	// HTTPClient, when set, enables URL sources with caller-controlled
	// transport behaviour (timeouts, proxies, TLS).
	HTTPClient *http.Client

	// AllowHTTPFallback enables URL sources with a default client when no
	// HTTPClient is injected.
	AllowHTTPFallback bool

	// RequestTimeout caps each remote fetch. Zero means no cap beyond the
	// client's own.
	RequestTimeout time.Duration
}

// WithFileSystem injects the fs.FS that backs fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables URL sources through the given client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources through a default client, capped by
// timeout when non-zero.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
