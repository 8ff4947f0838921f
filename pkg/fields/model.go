package fields

// ModelField accepts instances of one specific model schema. The type check
// matches on schema identity, so a structurally identical instance of a
// different model is still a mismatch. Once the type check passes the
// instance's own Validate runs and any nested failure propagates unchanged.
type ModelField struct {
	base
	model ModelType
}

// Model constructs a ModelField expecting instances of the given model.
func Model(model ModelType, options ...Option) *ModelField {
	cfg := newConfig(options)
	desc := "model"
	if model != nil {
		desc = model.Name()
	}
	expected := &matcher{desc: desc, fn: func(v any) bool {
		inst, ok := v.(ModelInstance)
		return ok && inst.ModelSchema() == model
	}}
	return &ModelField{
		base:  newBase(expected, cfg),
		model: model,
	}
}

// Model returns the expected model type.
func (f *ModelField) Model() ModelType { return f.model }

func (f *ModelField) Validate(value any) error {
	if err := f.check(value); err != nil {
		return err
	}
	if IsNull(value) {
		return nil
	}
	return value.(ModelInstance).Validate()
}
