package fields

import (
	"fmt"
	"reflect"
	"sort"
)

var (
	listMatcher = &matcher{desc: "list", fn: func(v any) bool {
		kind := reflect.ValueOf(v).Kind()
		return kind == reflect.Slice || kind == reflect.Array
	}}
	dictMatcher = &matcher{desc: "dict", fn: func(v any) bool {
		return reflect.ValueOf(v).Kind() == reflect.Map
	}}
)

// ListField accepts ordered sequences. When an element validator is set every
// element must pass it; the first failing element's error propagates.
type ListField struct {
	base
	of Field
}

// List constructs a ListField. Use Of to attach an element validator.
func List(options ...Option) *ListField {
	cfg := newConfig(options)
	return &ListField{
		base: newBase(listMatcher, cfg),
		of:   cfg.of,
	}
}

// Of returns the element validator, nil when unset.
func (f *ListField) Of() Field { return f.of }

func (f *ListField) Validate(value any) error {
	if f.of != nil && !IsNull(value) && f.matches(value) {
		rv := reflect.ValueOf(value)
		for i := 0; i < rv.Len(); i++ {
			if err := f.of.Validate(rv.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return f.check(value)
}

// DictField accepts key to value mappings. Optional key and value validators
// apply to every key / every value, failing fast on the first violation.
type DictField struct {
	base
	ofKey   Field
	ofValue Field
}

// Dict constructs a DictField. Use OfKey and OfValue to attach validators.
func Dict(options ...Option) *DictField {
	cfg := newConfig(options)
	return &DictField{
		base:    newBase(dictMatcher, cfg),
		ofKey:   cfg.ofKey,
		ofValue: cfg.ofValue,
	}
}

// OfKey returns the key validator, nil when unset.
func (f *DictField) OfKey() Field { return f.ofKey }

// OfValue returns the value validator, nil when unset.
func (f *DictField) OfValue() Field { return f.ofValue }

func (f *DictField) Validate(value any) error {
	if (f.ofKey != nil || f.ofValue != nil) && !IsNull(value) && f.matches(value) {
		rv := reflect.ValueOf(value)
		// Sorted key order keeps the first reported failure stable across
		// runs; map iteration order would make error messages flap.
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		if f.ofKey != nil {
			for _, key := range keys {
				if err := f.ofKey.Validate(key.Interface()); err != nil {
					return err
				}
			}
		}
		if f.ofValue != nil {
			for _, key := range keys {
				if err := f.ofValue.Validate(rv.MapIndex(key).Interface()); err != nil {
					return err
				}
			}
		}
	}
	return f.check(value)
}
