// Package prompt builds model instances interactively: one terminal prompt
// per declared field, answers validated with the field's own rules before
// they are accepted. The Driver interface keeps session logic testable
// without a terminal; the default driver uses survey.
package prompt
