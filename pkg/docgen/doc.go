// Package docgen renders resolved model schemas as Markdown or HTML
// reference documentation. It consumes only the public schema surface
// (names, field tables, nullability, bounds, and pass-through attrs), so it
// stays an external collaborator of the core engine. Titles and descriptions
// originate in schema documents and are treated as untrusted: they pass
// through a bluemonday strict policy before rendering.
package docgen
