package prompt_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-modelkit/pkg/fields"
	"github.com/goliatone/go-modelkit/pkg/model"
	"github.com/goliatone/go-modelkit/pkg/prompt"
)

// stubDriver replays scripted answers so sessions run without a terminal,
// recording the prompts it was shown.
type stubDriver struct {
	inputs   []string
	confirms []bool
	selects  []int

	shown []prompt.InputConfig
}

func (d *stubDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	d.shown = append(d.shown, cfg)
	if len(d.inputs) == 0 {
		return "", nil
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *stubDriver) Confirm(_ context.Context, _ prompt.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, nil
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *stubDriver) Select(_ context.Context, _ prompt.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, nil
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func TestSessionFillConstructsValidInstance(t *testing.T) {
	schema := model.MustDefine("Person",
		model.WithField("name", fields.String()),
		model.WithField("age", fields.Integral(fields.WithBounds(0, 120))),
		model.WithField("nickname", fields.String(fields.Nullable())),
	)

	driver := &stubDriver{
		inputs:   []string{"Ada", "36"},
		confirms: []bool{false}, // skip the nullable nickname
	}

	inst, err := prompt.NewSession(driver).Fill(context.Background(), schema)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	if value, _ := inst.Get("name"); value != "Ada" {
		t.Errorf("expected name Ada, got %v", value)
	}
	if value, _ := inst.Get("age"); value != int64(36) {
		t.Errorf("expected age 36, got %v (%T)", value, value)
	}
	if value, _ := inst.Get("nickname"); value != nil {
		t.Errorf("expected skipped nickname to stay null, got %v", value)
	}
	if err := inst.Validate(); err != nil {
		t.Fatalf("constructed instance should validate: %v", err)
	}
}

func TestSessionRepromptsInvalidAnswers(t *testing.T) {
	schema := model.MustDefine("Counter",
		model.WithField("count", fields.Integral(fields.WithBounds(0, 10))),
	)

	// First answer is not an integer, second is out of bounds, third is good.
	driver := &stubDriver{inputs: []string{"many", "42", "7"}}

	inst, err := prompt.NewSession(driver).Fill(context.Background(), schema)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if value, _ := inst.Get("count"); value != int64(7) {
		t.Errorf("expected 7 after re-prompting, got %v", value)
	}

	// Re-prompts carry the previous failure as help text so the user learns
	// what was wrong; the first prompt carries none.
	if len(driver.shown) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(driver.shown))
	}
	if driver.shown[0].Help != "" {
		t.Errorf("first prompt should carry no hint, got %q", driver.shown[0].Help)
	}
	if !strings.Contains(driver.shown[1].Help, "expecting integer") {
		t.Errorf("second prompt should explain the type failure, got %q", driver.shown[1].Help)
	}
	if !strings.Contains(driver.shown[2].Help, "outside bounds") {
		t.Errorf("third prompt should explain the bounds failure, got %q", driver.shown[2].Help)
	}
}

func TestSessionFillsNestedModels(t *testing.T) {
	person := model.MustDefine("Lead",
		model.WithField("name", fields.String()),
	)
	team := model.MustDefine("Squad",
		model.WithField("title", fields.String()),
		model.WithField("lead", fields.Model(person)),
		model.WithField("tags", fields.List(fields.Of(fields.String()))),
	)

	driver := &stubDriver{inputs: []string{"Research", "Ada", "ml, infra"}}

	inst, err := prompt.NewSession(driver).Fill(context.Background(), team)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if err := inst.Validate(); err != nil {
		t.Fatalf("nested instance should validate: %v", err)
	}

	lead, _ := inst.Get("lead")
	leadInst, ok := lead.(*model.Instance)
	if !ok {
		t.Fatalf("expected nested instance, got %T", lead)
	}
	if value, _ := leadInst.Get("name"); value != "Ada" {
		t.Errorf("expected nested name Ada, got %v", value)
	}

	tags, _ := inst.Get("tags")
	list, ok := tags.([]any)
	if !ok || len(list) != 2 || list[0] != "ml" || list[1] != "infra" {
		t.Errorf("expected parsed tag list, got %#v", tags)
	}
}
