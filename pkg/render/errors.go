package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

// ErrorMapping splits error messages into those attached to a value path and
// those shown above the form.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors joins form-level messages, trimming them and dropping
// blanks and repeats while keeping the first occurrence order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return dedupe(combined)
}

// MapErrorPayload attaches messages keyed by JSON pointers
// ("/projects/frontendProjects/0/repoUrl") or value paths
// ("projects.frontendProjects[0].repoUrl") to the deepest field of form they
// reach. A pointer into a table row keeps its index only when it ends on a
// column. Keys that match no field become form-level messages.
func MapErrorPayload(form model.Form, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	for key, messages := range payload {
		messages = dedupe(messages)
		if len(messages) == 0 {
			continue
		}
		path := resolveErrorPath(form.Fields, errorSegments(key))
		if path == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[path] = append(mapping.Fields[path], messages...)
	}
	mapping.Form = dedupe(mapping.Form)
	return mapping
}

func dedupe(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if _, ok := seen[message]; ok {
			continue
		}
		seen[message] = struct{}{}
		out = append(out, message)
	}
	return out
}

// errorSegments splits a JSON pointer or a value path. Pointer escapes
// (~1, ~0) are decoded per segment.
func errorSegments(key string) []string {
	key = strings.TrimSpace(key)
	if !strings.HasPrefix(key, "/") && !strings.HasPrefix(key, "#/") {
		return schema.Segments(key)
	}
	var out []string
	for _, part := range strings.Split(strings.TrimPrefix(key, "#"), "/") {
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		out = append(out, strings.ReplaceAll(part, "~0", "~"))
	}
	return out
}

func resolveErrorPath(fields []model.Field, segments []string) string {
	level := fields
	matched := ""
	for i := 0; i < len(segments); i++ {
		field, ok := fieldNamed(level, segments[i])
		if !ok {
			return matched
		}
		path := schema.Join(matched, field.Name)
		switch field.Type {
		case model.FieldGroup:
			level = field.Children
			matched = path
		case model.FieldTable:
			return tableErrorPath(field, path, segments[i+1:])
		default:
			return path
		}
	}
	return matched
}

func tableErrorPath(table model.Field, path string, rest []string) string {
	if len(rest) < 2 {
		return path
	}
	index, err := strconv.Atoi(rest[0])
	if err != nil || index < 0 {
		return path
	}
	column, ok := fieldNamed(table.Columns, rest[1])
	if !ok {
		return path
	}
	return schema.CellPath(path, index, column.Name)
}

func fieldNamed(fields []model.Field, name string) (model.Field, bool) {
	for _, field := range fields {
		if field.Name == name {
			return field, true
		}
	}
	return model.Field{}, false
}
