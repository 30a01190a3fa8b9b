package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/schema"
	"github.com/goliatone/go-formdoc/pkg/values"
)

// Schema describes the value bag of form as an OpenAPI schema object.
// Labels become titles, placeholders descriptions, and declared defaults
// schema defaults.
func Schema(form model.Form) *openapi3.Schema {
	root := objectSchema(form.Fields)
	root.Title = form.Name
	root.Description = form.Description
	return root
}

func objectSchema(fields []model.Field) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	var required []string
	for _, field := range fields {
		obj.WithProperty(field.Name, fieldSchema(field))
		if field.Required {
			required = append(required, field.Name)
		}
	}
	obj.Required = required
	return obj
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var out *openapi3.Schema
	switch field.Type {
	case model.FieldGroup:
		out = objectSchema(field.Children)
	case model.FieldTable:
		out = openapi3.NewArraySchema().WithItems(objectSchema(field.Columns))
	case model.FieldCheckbox:
		out = openapi3.NewBoolSchema()
	case model.FieldSelect, model.FieldRadio:
		enum := make([]any, 0, len(field.Options))
		for _, option := range field.Options {
			enum = append(enum, option.Value)
		}
		out = openapi3.NewStringSchema().WithEnum(enum...)
	default:
		out = openapi3.NewStringSchema()
	}
	out.Title = field.Label
	out.Description = field.Placeholder
	if field.Default != nil && field.Type.IsLeaf() {
		out.Default = field.Default
	}
	return out
}

// CheckShape validates the structure of raw against Schema(form). Blank
// values are pruned first and "required" violations are ignored: missing
// values are Required's concern. Failures are mapped back onto value paths;
// those that match no field are reported with an empty path.
func CheckShape(form model.Form, raw map[string]any) Errors {
	doc, err := jsonDocument(values.Normalize(raw))
	if err != nil {
		return Errors{{Message: err.Error()}}
	}

	err = Schema(form).VisitJSON(doc, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	payload := make(map[string][]string)
	var order []string
	for _, issue := range flattenSchemaErrors(err) {
		var schemaErr *openapi3.SchemaError
		if errors.As(issue, &schemaErr) {
			if schemaErr.SchemaField == "required" {
				continue
			}
			key := "/" + strings.Join(schemaErr.JSONPointer(), "/")
			if _, ok := payload[key]; !ok {
				order = append(order, key)
			}
			payload[key] = append(payload[key], schemaErr.Reason)
			continue
		}
		if _, ok := payload[""]; !ok {
			order = append(order, "")
		}
		payload[""] = append(payload[""], issue.Error())
	}
	if len(payload) == 0 {
		return nil
	}

	mapping := render.MapErrorPayload(form, payload)
	var errs Errors
	paths := make([]string, 0, len(mapping.Fields))
	for path := range mapping.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		label := ""
		if field, ok := schema.Lookup(form.Fields, path); ok {
			label = field.Label
		}
		for _, message := range mapping.Fields[path] {
			errs = append(errs, FieldError{Path: path, Label: label, Message: message})
		}
	}
	for _, message := range mapping.Form {
		errs = append(errs, FieldError{Message: message})
	}
	return errs
}

func flattenSchemaErrors(err error) []error {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return []error{err}
	}
	var out []error
	for _, item := range multi {
		out = append(out, flattenSchemaErrors(item)...)
	}
	return out
}

// jsonDocument prunes blank values and round-trips the bag through JSON so
// the validator sees plain JSON types (float64, []any, map[string]any).
func jsonDocument(bag values.Values) (any, error) {
	pruned := prune(map[string]any(bag))
	data, err := json.Marshal(pruned)
	if err != nil {
		return nil, fmt.Errorf("validation: encode values: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("validation: decode values: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func prune(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			if cleaned := prune(item); !isBlank(cleaned) {
				out[key] = cleaned
			}
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			if cleaned := prune(item); !isBlank(cleaned) {
				out[i] = cleaned
			} else {
				out[i] = map[string]any{}
			}
		}
		return out
	default:
		return value
	}
}

func isBlank(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	default:
		return false
	}
}
