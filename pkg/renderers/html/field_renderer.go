package html

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render/template"
	"github.com/goliatone/go-formdoc/pkg/schema"
	"github.com/goliatone/go-formdoc/pkg/values"
)

const textareaRows = 4

// fieldRenderer walks the field tree and renders one template per node.
// Children are rendered first and handed to their parent template as
// pre-rendered markup.
type fieldRenderer struct {
	templates template.TemplateRenderer
	values    values.Values
	errors    map[string][]string
	extraRows int
}

func (r *fieldRenderer) renderAll(fields []model.Field, prefix string) (string, error) {
	var b strings.Builder
	for _, field := range fields {
		out, err := r.render(field, schema.Join(prefix, field.Name))
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func (r *fieldRenderer) render(field model.Field, path string) (string, error) {
	switch field.Type {
	case model.FieldGroup:
		children, err := r.renderAll(field.Children, path)
		if err != nil {
			return "", err
		}
		return r.execute("templates/fieldset", path, map[string]any{
			"path":     path,
			"label":    field.Label,
			"children": children,
			"errors":   r.errors[path],
			"classes":  chromeClasses(),
		})
	case model.FieldTable:
		return r.renderTable(field, path)
	case model.FieldText, model.FieldTextarea, model.FieldSelect, model.FieldRadio, model.FieldCheckbox:
		control, err := r.control(field, path, r.leafValue(field, path))
		if err != nil {
			return "", err
		}
		return r.execute("templates/field", path, map[string]any{
			"path":     path,
			"type":     string(field.Type),
			"label":    field.Label,
			"required": field.Required,
			"control":  control,
			"errors":   r.errors[path],
			"classes":  chromeClasses(),
		})
	default:
		return "", fmt.Errorf("field %q: unsupported type %q", path, field.Type)
	}
}

func (r *fieldRenderer) renderTable(field model.Field, path string) (string, error) {
	columns := make([]any, 0, len(field.Columns))
	for _, column := range field.Columns {
		columns = append(columns, map[string]any{
			"label":    column.Label,
			"required": column.Required,
		})
	}

	existing := r.values.Rows(path)
	count := len(existing) + max(r.extraRows, 0)
	if count == 0 {
		count = 1
	}

	rows := make([]any, 0, count)
	for i := 0; i < count; i++ {
		var row values.Row
		if i < len(existing) {
			row = existing[i]
		}
		cells := make([]any, 0, len(field.Columns))
		for _, column := range field.Columns {
			cellPath := schema.CellPath(path, i, column.Name)
			control, err := r.control(column, cellPath, row.String(column.Name))
			if err != nil {
				return "", err
			}
			cells = append(cells, map[string]any{
				"control": control,
				"errors":  r.errors[cellPath],
			})
		}
		rows = append(rows, cells)
	}

	return r.execute("templates/table", path, map[string]any{
		"path":     path,
		"label":    field.Label,
		"required": field.Required,
		"columns":  columns,
		"rows":     rows,
		"errors":   r.errors[path],
		"classes":  chromeClasses(),
	})
}

// control renders the bare input for a leaf. Labels and errors are added by
// the wrapping template.
func (r *fieldRenderer) control(field model.Field, path, value string) (string, error) {
	data := map[string]any{
		"path":        path,
		"value":       value,
		"placeholder": field.Placeholder,
		"required":    field.Required,
		"errors":      len(r.errors[path]) > 0,
	}
	switch field.Type {
	case model.FieldTextarea:
		data["rows"] = textareaRows
	case model.FieldCheckbox:
		data["checked"] = values.Truthy(value) && value != "false"
	case model.FieldSelect, model.FieldRadio:
		options := make([]any, 0, len(field.Options))
		for _, option := range field.Options {
			options = append(options, map[string]any{
				"label":    option.Label,
				"value":    option.Value,
				"selected": option.Value == value,
			})
		}
		data["options"] = options
	case model.FieldText:
	default:
		return "", fmt.Errorf("field %q: type %q has no control", path, field.Type)
	}
	return r.execute("templates/controls/"+string(field.Type), path, data)
}

// leafValue returns the current value of a leaf, falling back to the declared
// default when the bag has no entry for it.
func (r *fieldRenderer) leafValue(field model.Field, path string) string {
	if value, ok := r.values.Get(path); ok {
		return values.Stringify(value)
	}
	if field.Default != nil {
		return values.Stringify(field.Default)
	}
	return ""
}

func (r *fieldRenderer) execute(name, path string, data map[string]any) (string, error) {
	out, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("field %q: %w", path, err)
	}
	return out, nil
}
