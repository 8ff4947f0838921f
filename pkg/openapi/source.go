package openapi

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind enumerates the modalities a schema document can be reached
// through.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source pinpoints one schema document: the modality and the location within
// it. Sources are plain values; they travel with the Document they produced
// so errors anywhere in the import pipeline can name the document they are
// about. The zero Source is invalid and loaders reject it.
type Source struct {
	kind     SourceKind
	location string
}

// SourceFromFile returns a Source for an on-disk document.
func SourceFromFile(path string) Source {
	return Source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS returns a Source for a document inside the loader's
// configured fs.FS.
func SourceFromFS(name string) Source {
	return Source{kind: SourceKindFS, location: name}
}

// SourceFromURL parses raw and returns an HTTP source. It panics on an
// invalid URL to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("openapi: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("openapi: invalid URL %q: %v", raw, err))
	}
	return Source{kind: SourceKindURL, location: raw}
}

// Kind reports the loading modality.
func (s Source) Kind() SourceKind {
	return s.kind
}

// Location returns the file path, fs entry name, or URL.
func (s Source) Location() string {
	return s.location
}

// IsZero reports whether the source was never set.
func (s Source) IsZero() bool {
	return s.kind == "" && s.location == ""
}

// String renders the source as "kind:location" for error messages.
func (s Source) String() string {
	if s.IsZero() {
		return "<unset source>"
	}
	return string(s.kind) + ":" + s.location
}
