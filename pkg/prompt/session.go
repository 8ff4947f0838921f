package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-modelkit/pkg/fields"
	"github.com/goliatone/go-modelkit/pkg/model"
)

// Session drives interactive construction of model instances: one prompt per
// declared field, in field-table order. It consumes only the core's public
// construct/validate surface.
type Session struct {
	driver Driver
}

// NewSession constructs a Session. A nil driver falls back to the survey
// implementation.
func NewSession(driver Driver) *Session {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Session{driver: driver}
}

// Fill prompts for every declared field of schema and constructs an instance
// from the answers. Nullable fields may be skipped and stay null. Each answer
// is validated with its field before it is accepted; invalid answers re-prompt.
func (s *Session) Fill(ctx context.Context, schema *model.Schema) (*model.Instance, error) {
	if schema == nil {
		return nil, errors.New("prompt: schema is required")
	}

	values := make(map[string]any, schema.Len())
	for _, spec := range schema.Fields() {
		value, skip, err := s.fillField(ctx, spec.Name, spec.Field)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		values[spec.Name] = value
	}
	return schema.New(values)
}

func (s *Session) fillField(ctx context.Context, name string, field fields.Field) (any, bool, error) {
	if field.Nullable() {
		provide, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Provide a value for %s?", name),
			Default: false,
		})
		if err != nil {
			return nil, false, err
		}
		if !provide {
			return nil, true, nil
		}
	}

	// The last failure message rides along as prompt help so the user
	// learns why the previous answer was rejected.
	var hint string
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		value, err := s.askValue(ctx, name, field, hint)
		if err != nil {
			return nil, false, err
		}
		if err := field.Validate(value); err != nil {
			// Re-prompt on rule violations; anything else is terminal.
			if failure, ok := fields.AsFailure(err); ok {
				hint = failure.Error()
				continue
			}
			return nil, false, err
		}
		return value, false, nil
	}
}

func (s *Session) askValue(ctx context.Context, name string, field fields.Field, hint string) (any, error) {
	switch f := field.(type) {
	case *fields.BoolField:
		return s.driver.Confirm(ctx, ConfirmConfig{Message: name + "?", Help: hint})
	case *fields.IntegralField:
		raw, err := s.driver.Input(ctx, InputConfig{Message: name + " (integer):", Help: hint})
		if err != nil {
			return nil, err
		}
		parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			// Hand the raw string to the field so the re-prompt loop reports
			// a proper type failure instead of a parse error.
			return raw, nil
		}
		return parsed, nil
	case *fields.NumericField:
		raw, err := s.driver.Input(ctx, InputConfig{Message: name + " (number):", Help: hint})
		if err != nil {
			return nil, err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return raw, nil
		}
		return parsed, nil
	case *fields.ListField:
		help := "Items are parsed with the element validator where one is set."
		if hint != "" {
			help = hint
		}
		raw, err := s.driver.Input(ctx, InputConfig{
			Message: name + " (comma separated):",
			Help:    help,
		})
		if err != nil {
			return nil, err
		}
		return parseList(raw, f.Of()), nil
	case *fields.ModelField:
		nested, ok := f.Model().(*model.Schema)
		if !ok {
			return nil, fmt.Errorf("prompt: field %q expects an unsupported model type", name)
		}
		return s.Fill(ctx, nested)
	default:
		// Strings and unconstrained fields take the input verbatim.
		return s.driver.Input(ctx, InputConfig{Message: name + ":", Help: hint})
	}
}

// parseList splits a comma separated answer and coerces each item to the
// element validator's scalar kind when it has one.
func parseList(raw string, of fields.Field) []any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []any{}
	}
	parts := strings.Split(trimmed, ",")
	items := make([]any, 0, len(parts))
	for _, part := range parts {
		items = append(items, coerceScalar(strings.TrimSpace(part), of))
	}
	return items
}

func coerceScalar(raw string, of fields.Field) any {
	switch of.(type) {
	case *fields.IntegralField:
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return parsed
		}
	case *fields.NumericField:
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			return parsed
		}
	case *fields.BoolField:
		if parsed, err := strconv.ParseBool(raw); err == nil {
			return parsed
		}
	}
	return raw
}
