// Package loader resolves schema document sources into raw documents. It
// reads the filesystem and configured fs.FS values directly and only touches
// the network when the options explicitly enable HTTP.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	pkgopenapi "github.com/goliatone/go-modelkit/pkg/openapi"
)

// Loader implements pkgopenapi.Loader. Every failure is wrapped with the
// offending source in "kind:location" form so callers juggling several
// documents can tell which one broke.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options. A client is configured
// only when the options opt in to HTTP; otherwise URL sources stay disabled.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	l := &Loader{
		files:   options.FileSystem,
		timeout: options.RequestTimeout,
	}
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if l.timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = l.timeout
		}
		l.client = &clone
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load resolves src into a Document carrying the source for provenance.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src.IsZero() {
		return pkgopenapi.Document{}, errors.New("schema loader: source is required")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case pkgopenapi.SourceKindFS:
		data, err = l.readFS(src.Location())
	case pkgopenapi.SourceKindURL:
		data, err = l.fetch(ctx, src.Location())
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("schema loader: %s: %w", src, err)
	}

	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) readFS(name string) ([]byte, error) {
	if l.files == nil {
		return nil, errors.New("no filesystem configured")
	}
	return fs.ReadFile(l.files, name)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.client == nil {
		return nil, errors.New("http support disabled")
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
