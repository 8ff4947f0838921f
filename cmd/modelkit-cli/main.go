package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelkit"
	"github.com/goliatone/go-modelkit/pkg/docgen"
	"github.com/goliatone/go-modelkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelkit/pkg/openapi"
	"github.com/goliatone/go-modelkit/pkg/prompt"
)

func main() {
	source := flag.String("source", "", "OpenAPI or JSON Schema document path or URL")
	modelName := flag.String("model", "", "component schema to work with")
	payload := flag.String("payload", "", "JSON or YAML payload file to validate")
	strict := flag.Bool("strict", false, "disallow unknown attributes during validation")
	docs := flag.Bool("docs", false, "render schema documentation instead of validating")
	docsFormat := flag.String("docs-format", "markdown", "documentation format: markdown or html")
	interactive := flag.Bool("interactive", false, "construct a payload interactively")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src.IsZero() {
		log.Fatalf("invalid source: %q", *source)
	}

	schemas, err := modelkit.ImportSchemas(ctx, src, []pkgopenapi.LoaderOption{
		pkgopenapi.WithHTTPFallback(30 * time.Second),
	})
	if err != nil {
		log.Fatalf("Failed to import schemas: %v", err)
	}

	if *docs {
		renderDocs(schemas, *modelName, *docsFormat, *output)
		return
	}

	schema, ok := schemas[*modelName]
	if !ok {
		log.Fatalf("unknown model %q; document declares: %s", *modelName, strings.Join(schemaNames(schemas), ", "))
	}

	var inst *model.Instance
	switch {
	case *interactive:
		inst, err = prompt.NewSession(nil).Fill(ctx, schema)
		if err != nil {
			log.Fatalf("Failed to build payload: %v", err)
		}
	case *payload != "":
		mapping, err := decodePayload(*payload)
		if err != nil {
			log.Fatalf("Failed to read payload: %v", err)
		}
		inst = model.Materialize(schema, mapping)
	default:
		log.Fatal("either -payload or -interactive is required")
	}

	if *strict {
		err = inst.ValidateWith(false)
	} else {
		err = inst.Validate()
	}
	if err != nil {
		log.Fatalf("Payload is invalid: %v", err)
	}

	fmt.Printf("Payload conforms to %s\n", schema.Name())
}

func renderDocs(schemas map[string]*model.Schema, only, format, output string) {
	selected := make([]*model.Schema, 0, len(schemas))
	if only != "" {
		schema, ok := schemas[only]
		if !ok {
			log.Fatalf("unknown model %q; document declares: %s", only, strings.Join(schemaNames(schemas), ", "))
		}
		selected = append(selected, schema)
	} else {
		for _, name := range schemaNames(schemas) {
			selected = append(selected, schemas[name])
		}
	}

	renderer, err := docgen.New(docgen.WithFormat(docgen.Format(format)))
	if err != nil {
		log.Fatalf("Failed to configure docs renderer: %v", err)
	}
	out, err := renderer.Render(selected...)
	if err != nil {
		log.Fatalf("Failed to render docs: %v", err)
	}

	if output != "" {
		if err := os.WriteFile(output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Docs written to %s\n", output)
	} else {
		fmt.Println(string(out))
	}
}

func decodePayload(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var mapping map[string]any
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &mapping); err != nil {
			return nil, err
		}
	default:
		// UseNumber keeps integers distinguishable from floats, which the
		// integral fields care about.
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&mapping); err != nil {
			return nil, err
		}
	}
	return mapping, nil
}

func schemaNames(schemas map[string]*model.Schema) []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseSource(raw string) pkgopenapi.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return pkgopenapi.Source{}
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgopenapi.SourceFromURL(path)
	}
	return pkgopenapi.SourceFromFile(path)
}
