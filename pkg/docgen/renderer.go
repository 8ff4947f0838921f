package docgen

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-modelkit/pkg/model"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// Format selects the documentation output flavour.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	format       Format
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// WithFormat selects the output format; the default is Markdown.
func WithFormat(format Format) Option {
	return func(cfg *config) {
		cfg.format = format
	}
}

// WithThemeSelector wires a go-theme selector so HTML output carries the
// resolved theme's tokens as CSS custom properties.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// Renderer turns resolved schemas into reference documentation. Compiled
// templates are cached after first use, so a single Renderer can serve many
// Render calls cheaply.
type Renderer struct {
	templateSet  *pongo2.TemplateSet
	format       Format
	policy       *bluemonday.Policy
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string

	mu        sync.RWMutex
	templates map[string]*pongo2.Template
}

// New constructs a Renderer using the embedded templates.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{format: FormatMarkdown}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	switch cfg.format {
	case FormatMarkdown, FormatHTML:
	default:
		return nil, fmt.Errorf("docgen: unsupported format %q", cfg.format)
	}

	return &Renderer{
		templateSet:  pongo2.NewSet("docgen", pongo2.NewFSLoader(templatesFS)),
		format:       cfg.format,
		policy:       bluemonday.StrictPolicy(),
		selector:     cfg.selector,
		themeName:    cfg.themeName,
		themeVariant: cfg.themeVariant,
		templates:    make(map[string]*pongo2.Template),
	}, nil
}

// Render produces documentation for the given schemas, in argument order.
func (r *Renderer) Render(schemas ...*model.Schema) ([]byte, error) {
	if r == nil || r.templateSet == nil {
		return nil, errors.New("docgen: renderer is nil")
	}
	if len(schemas) == 0 {
		return nil, errors.New("docgen: at least one schema is required")
	}

	views := make([]schemaView, 0, len(schemas))
	for _, schema := range schemas {
		if schema == nil {
			return nil, errors.New("docgen: schema is nil")
		}
		views = append(views, r.schemaView(schema))
	}

	ctx := pongo2.Context{"schemas": views}
	if r.format == FormatHTML {
		css, err := r.themeCSS()
		if err != nil {
			return nil, err
		}
		ctx["themeCSS"] = css
	}

	tmpl, err := r.getTemplate("templates/" + string(r.format) + ".tpl")
	if err != nil {
		return nil, err
	}
	out, err := tmpl.ExecuteBytes(ctx)
	if err != nil {
		return nil, fmt.Errorf("docgen: render: %w", err)
	}
	return out, nil
}

// getTemplate returns the compiled template for path, loading it on first use.
func (r *Renderer) getTemplate(path string) (*pongo2.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.templates[path]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := r.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("docgen: load template %q: %w", path, err)
	}
	r.templates[path] = tmpl
	return tmpl, nil
}

// themeCSS resolves the configured theme selection into a CSS custom property
// block. No selector means no themed output, which is fine.
func (r *Renderer) themeCSS() (string, error) {
	if r.selector == nil {
		return "", nil
	}
	selection, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil {
		return "", fmt.Errorf("docgen: resolve theme: %w", err)
	}
	if selection == nil || selection.Manifest == nil || len(selection.Manifest.Tokens) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(selection.Manifest.Tokens))
	for key := range selection.Manifest.Tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&sb, "--%s: %s; ", key, selection.Manifest.Tokens[key])
	}
	return strings.TrimSpace(sb.String()), nil
}

func (r *Renderer) sanitize(raw string) string {
	return strings.TrimSpace(r.policy.Sanitize(raw))
}
