// Package tui collects template values interactively in a terminal. Leaves
// are asked one by one in schema order, groups announce their label, and
// table rows are entered in a loop until the user declines another row.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/schema"
	"github.com/goliatone/go-formdoc/pkg/values"
	"github.com/goliatone/go-formdoc/pkg/visibility"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

const skipOption = "（不填）"

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	onChange     ChangeHook
	evaluator    visibility.Evaluator
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		evaluator:    visibility.Roles,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render prompts for every field visible to opts.Roles, seeded with
// opts.Values, and returns the collected values serialized in the configured
// output format.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	bag, fields, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(fields, bag)
}

// Collect runs the prompts and returns the collected values together with
// the fields that were asked.
func (r *Renderer) Collect(ctx context.Context, form model.Form, opts render.RenderOptions) (values.Values, []model.Field, error) {
	if ctx == nil {
		return nil, nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if r.driver == nil {
		return nil, nil, errors.New("tui: prompt driver is nil")
	}

	state := newAnswers(opts.Values, opts.Errors)
	fields, err := visibility.FilterFields(form.Fields, r.evaluator, visibility.Context{
		Roles:  opts.Roles,
		Values: state.bag,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("tui: %w", err)
	}

	if form.Name != "" {
		if err := r.driver.Info(ctx, "== "+form.Name+" =="); err != nil {
			return nil, nil, err
		}
	}
	for _, message := range render.MergeFormErrors(opts.FormErrors) {
		if err := r.driver.Info(ctx, "! "+message); err != nil {
			return nil, nil, err
		}
	}

	for _, field := range fields {
		if err := r.promptField(ctx, field, field.Name, state); err != nil {
			return nil, nil, err
		}
	}
	return state.bag, fields, nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, path string, state *answers) error {
	for _, message := range state.errors[path] {
		if err := r.driver.Info(ctx, "! "+message); err != nil {
			return err
		}
	}

	switch field.Type {
	case model.FieldGroup:
		if err := r.driver.Info(ctx, "-- "+field.Label+" --"); err != nil {
			return err
		}
		for _, child := range field.Children {
			if err := r.promptField(ctx, child, schema.Join(path, child.Name), state); err != nil {
				return err
			}
		}
		return nil
	case model.FieldTable:
		return r.promptTable(ctx, field, path, state)
	case model.FieldCheckbox:
		return r.promptCheckbox(ctx, field, path, state)
	case model.FieldSelect, model.FieldRadio:
		return r.promptChoice(ctx, field, path, state)
	case model.FieldText, model.FieldTextarea:
		return r.promptText(ctx, field, path, state)
	default:
		return fmt.Errorf("tui: field %q: unsupported type %q", path, field.Type)
	}
}

func (r *Renderer) promptText(ctx context.Context, field model.Field, path string, state *answers) error {
	defaultVal := state.text(path, field)
	for {
		var (
			response string
			err      error
		)
		if field.Type == model.FieldTextarea {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: displayLabel(field),
				Default: defaultVal,
				Help:    field.Placeholder,
			})
		} else {
			response, err = r.driver.Input(ctx, InputConfig{
				Message: displayLabel(field),
				Default: defaultVal,
				Help:    field.Placeholder,
			})
		}
		if err != nil {
			return err
		}

		if field.Required && strings.TrimSpace(response) == "" {
			if err := r.driver.Info(ctx, "! "+requiredMessage(field)); err != nil {
				return err
			}
			continue
		}
		return r.store(path, response, state)
	}
}

func (r *Renderer) promptCheckbox(ctx context.Context, field model.Field, path string, state *answers) error {
	defaultVal := state.checked(path, field)
	for {
		resp, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: displayLabel(field),
			Default: defaultVal,
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		if field.Required && !resp {
			if err := r.driver.Info(ctx, "! "+requiredMessage(field)); err != nil {
				return err
			}
			continue
		}
		return r.store(path, resp, state)
	}
}

func (r *Renderer) promptChoice(ctx context.Context, field model.Field, path string, state *answers) error {
	current := state.text(path, field)

	var labels []string
	var choices []string
	if !field.Required {
		labels = append(labels, skipOption)
		choices = append(choices, "")
	}
	defaultIdx := 0
	for _, option := range field.Options {
		if option.Value == current {
			defaultIdx = len(choices)
		}
		labels = append(labels, option.Label)
		choices = append(choices, option.Value)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      labels,
		DefaultIndex: defaultIdx,
		Help:         field.Placeholder,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		return fmt.Errorf("tui: field %q: selection %d out of range", path, idx)
	}
	return r.store(path, choices[idx], state)
}

// promptTable revisits existing rows, then offers to add rows until declined.
func (r *Renderer) promptTable(ctx context.Context, field model.Field, path string, state *answers) error {
	existing := state.rowCount(path)
	if err := r.driver.Info(ctx, fmt.Sprintf("-- %s (%d) --", field.Label, existing)); err != nil {
		return err
	}

	row := 0
	for ; row < existing; row++ {
		if err := r.promptRow(ctx, field, path, row, state); err != nil {
			return err
		}
	}

	for {
		message := "添加" + field.Label + "？"
		if row > 0 {
			message = "继续添加" + field.Label + "？"
		}
		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: row == 0 && field.Required,
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := r.promptRow(ctx, field, path, row, state); err != nil {
			return err
		}
		row++
	}
}

func (r *Renderer) promptRow(ctx context.Context, field model.Field, path string, row int, state *answers) error {
	if err := r.driver.Info(ctx, fmt.Sprintf("%s #%d", field.Label, row+1)); err != nil {
		return err
	}
	for _, column := range field.Columns {
		if err := r.promptField(ctx, column, schema.CellPath(path, row, column.Name), state); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) store(path string, value any, state *answers) error {
	if err := state.set(path, value); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if r.onChange != nil {
		r.onChange(path, value)
	}
	return nil
}

func (r *Renderer) serialize(fields []model.Field, bag values.Values) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		return []byte(prettyPrint(fields, bag)), nil
	}
	out, err := json.MarshalIndent(map[string]any(bag), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode values: %w", err)
	}
	return out, nil
}

// prettyPrint lists answered leaves as "label: value" lines in schema order.
func prettyPrint(fields []model.Field, bag values.Values) string {
	var b strings.Builder
	for _, entry := range schema.Leaves(fields) {
		field := entry.Field
		if field.Type != model.FieldTable {
			fmt.Fprintf(&b, "%s: %s\n", field.Label, bag.String(entry.Path))
			continue
		}
		fmt.Fprintf(&b, "%s:\n", field.Label)
		for i, row := range bag.Rows(entry.Path) {
			cells := make([]string, 0, len(field.Columns))
			for _, column := range field.Columns {
				cells = append(cells, column.Label+"="+row.String(column.Name))
			}
			fmt.Fprintf(&b, "  %d. %s\n", i+1, strings.Join(cells, ", "))
		}
	}
	return b.String()
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func requiredMessage(field model.Field) string {
	return "请输入" + displayLabel(field)
}
