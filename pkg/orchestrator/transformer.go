package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdoc/pkg/model"
)

// Transformer mutates a template form before it is rendered or validated.
// The form handed over is a copy; the template itself is never modified.
type Transformer interface {
	Transform(ctx context.Context, form *model.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// PresetTransformer relabels template forms from a YAML (or JSON) document
// keyed by template id:
//
//	test-report:
//	  name: 提测单
//	  fields:
//	    projectName: {label: 项目, placeholder: 例如 formdoc}
//	    projects.frontendProjects.repoUrl: {required: false}
//	    remark: {roles: [pm, backend]}
//
// Field paths are dotted names. Table columns are addressed through the table
// name without an index.
type PresetTransformer struct {
	presets map[string]formPreset
}

type formPreset struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Fields      map[string]fieldPreset `yaml:"fields"`
}

type fieldPreset struct {
	Label       string       `yaml:"label"`
	Placeholder string       `yaml:"placeholder"`
	Required    *bool        `yaml:"required"`
	Roles       []model.Role `yaml:"roles"`
}

// NewPresetTransformer parses a preset document. Unknown roles are rejected
// up front; unknown field paths only surface when the template is used.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("presets: document is empty")
	}
	var presets map[string]formPreset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("presets: parse: %w", err)
	}
	for id, preset := range presets {
		for path, field := range preset.Fields {
			for _, role := range field.Roles {
				if !role.Valid() {
					return nil, fmt.Errorf("presets: %s.%s: unknown role %q", id, path, role)
				}
			}
		}
	}
	return &PresetTransformer{presets: presets}, nil
}

// NewPresetTransformerFromFS reads the preset document at path in fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil || strings.TrimSpace(path) == "" {
		return nil, errors.New("presets: filesystem and path are required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("presets: %w", err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the preset registered for form.TemplateID, if any.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.Form) error {
	if form == nil {
		return errors.New("presets: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	preset, ok := t.presets[form.TemplateID]
	if !ok {
		return nil
	}
	if preset.Name != "" {
		form.Name = preset.Name
	}
	if preset.Description != "" {
		form.Description = preset.Description
	}
	for path, fp := range preset.Fields {
		field := fieldAt(form.Fields, strings.Split(path, "."))
		if field == nil {
			return fmt.Errorf("presets: %s: field %q not found", form.TemplateID, path)
		}
		applyFieldPatch(field, fp)
	}
	return nil
}

func applyFieldPatch(field *model.Field, patch fieldPreset) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Roles != nil {
		field.Roles = append([]model.Role(nil), patch.Roles...)
	}
}

// fieldAt descends groups through Children and tables through Columns.
func fieldAt(fields []model.Field, segments []string) *model.Field {
	for i := range fields {
		field := &fields[i]
		if field.Name != segments[0] {
			continue
		}
		switch {
		case len(segments) == 1:
			return field
		case field.Type == model.FieldTable:
			return fieldAt(field.Columns, segments[1:])
		default:
			return fieldAt(field.Children, segments[1:])
		}
	}
	return nil
}

func cloneForm(form model.Form) model.Form {
	form.Fields = cloneFields(form.Fields)
	return form
}

func cloneFields(fields []model.Field) []model.Field {
	if fields == nil {
		return nil
	}
	out := make([]model.Field, len(fields))
	for i, field := range fields {
		field.Options = append([]model.Option(nil), field.Options...)
		field.Roles = append([]model.Role(nil), field.Roles...)
		field.Children = cloneFields(field.Children)
		field.Columns = cloneFields(field.Columns)
		out[i] = field
	}
	return out
}
