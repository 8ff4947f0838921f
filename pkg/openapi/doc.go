// Package openapi defines the contracts for fetching schema documents
// (OpenAPI or bare JSON Schema) and importing their component schemas as
// model schemas. Implementations live under internal/openapi; construction
// helpers live in the top-level modelkit package to prevent import cycles.
package openapi
