// Package model resolves declarative field tables and provides the instance
// protocol over them. Define turns a set of (name, field) declarations,
// possibly contributed by ancestor schemas with earlier-listed parents taking
// precedence, into an immutable Schema. Instances constructed from a schema
// hold loosely typed attribute values; New is strict about unrecognized
// names, FromMap is deliberately permissive so malformed external data can be
// captured first and reported by Validate later. Validation is fail-fast:
// the first violation found, in field declaration order and recursively
// within containers, aborts and surfaces immediately.
package model
