package openapi

import "errors"

// Document wraps a raw schema document payload and its origin. Exposing this
// type instead of kin-openapi structs keeps the public API decoupled from the
// parsing backend.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src.IsZero() {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Location is a convenience for error messages: the document's source in
// "kind:location" form.
func (d Document) Location() string {
	return d.source.String()
}

// Raw returns a defensive copy of the document payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}
