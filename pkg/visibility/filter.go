package visibility

import (
	"fmt"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

// FilterFields returns a copy of the field tree with hidden fields removed.
// Hiding a group or table hides everything beneath it. A nil evaluator
// defaults to Roles.
func FilterFields(fields []model.Field, evaluator Evaluator, ctx Context) ([]model.Field, error) {
	if evaluator == nil {
		evaluator = Roles
	}
	return filterVisibleFields(fields, "", evaluator, ctx)
}

func filterVisibleFields(fields []model.Field, prefix string, evaluator Evaluator, ctx Context) ([]model.Field, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	result := make([]model.Field, 0, len(fields))
	for _, field := range fields {
		path := schema.Join(prefix, field.Name)

		ok, err := evaluator.Visible(path, field, ctx)
		if err != nil {
			return nil, fmt.Errorf("visibility: evaluate %s: %w", path, err)
		}
		if !ok {
			continue
		}

		switch field.Type {
		case model.FieldGroup:
			children, err := filterVisibleFields(field.Children, path, evaluator, ctx)
			if err != nil {
				return nil, err
			}
			if len(children) == 0 {
				continue
			}
			field.Children = children
		case model.FieldTable:
			columns, err := filterVisibleFields(field.Columns, path, evaluator, ctx)
			if err != nil {
				return nil, err
			}
			if len(columns) == 0 {
				continue
			}
			field.Columns = columns
		}

		result = append(result, field)
	}

	return result, nil
}

// HiddenPaths returns the set of paths the evaluator hides. Only the topmost
// hidden path of a subtree is recorded; callers use Hidden to test
// descendants.
func HiddenPaths(fields []model.Field, evaluator Evaluator, ctx Context) (map[string]struct{}, error) {
	if evaluator == nil {
		evaluator = Roles
	}
	hidden := make(map[string]struct{})
	err := schema.Walk(fields, "", func(entry schema.Entry) error {
		ok, err := evaluator.Visible(entry.Path, entry.Field, ctx)
		if err != nil {
			return fmt.Errorf("visibility: evaluate %s: %w", entry.Path, err)
		}
		if !ok {
			hidden[entry.Path] = struct{}{}
			return schema.SkipChildren
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hidden, nil
}

// Hidden reports whether path or any of its ancestors is in the hidden set.
// Row indices in path are ignored.
func Hidden(hidden map[string]struct{}, path string) bool {
	if len(hidden) == 0 {
		return false
	}
	current := ""
	for _, segment := range schema.Segments(path) {
		if isIndex(segment) {
			continue
		}
		current = schema.Join(current, segment)
		if _, ok := hidden[current]; ok {
			return true
		}
	}
	return false
}

func isIndex(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
