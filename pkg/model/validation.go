package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSchema wraps every schema invariant violation.
var ErrInvalidSchema = errors.New("model: invalid schema")

var (
	errNameMissing     = errors.New("field name is required")
	errGroupChildren   = errors.New("group fields require children")
	errTableColumns    = errors.New("table fields require columns")
	errLeafNested      = errors.New("leaf fields cannot declare children or columns")
	errOptionsRequired = errors.New("select and radio fields require options")
)

// ValidateFields checks the structural invariants of a field tree: unique,
// non-empty names per level, groups with children only, tables with leaf
// columns only, and choice fields with options.
func ValidateFields(fields []Field) error {
	return validateLevel(fields, "")
}

func validateLevel(fields []Field, prefix string) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		path := joinPath(prefix, name)
		if name == "" {
			return schemaError(prefix, errNameMissing)
		}
		if _, dup := seen[name]; dup {
			return schemaError(path, fmt.Errorf("duplicate field name %q", name))
		}
		seen[name] = struct{}{}

		if err := validateField(field, path); err != nil {
			return err
		}
	}
	return nil
}

func validateField(field Field, path string) error {
	for _, role := range field.Roles {
		if !role.Valid() {
			return schemaError(path, fmt.Errorf("unknown role %q", role))
		}
	}

	switch field.Type {
	case FieldGroup:
		if len(field.Children) == 0 || len(field.Columns) > 0 {
			return schemaError(path, errGroupChildren)
		}
		return validateLevel(field.Children, path)
	case FieldTable:
		if len(field.Columns) == 0 || len(field.Children) > 0 {
			return schemaError(path, errTableColumns)
		}
		for _, col := range field.Columns {
			if !col.Type.IsLeaf() {
				return schemaError(joinPath(path, col.Name), fmt.Errorf("table columns must be leaf fields, got %q", col.Type))
			}
		}
		return validateLevel(field.Columns, path)
	case FieldSelect, FieldRadio:
		if len(field.Options) == 0 {
			return schemaError(path, errOptionsRequired)
		}
		fallthrough
	case FieldText, FieldTextarea, FieldCheckbox:
		if len(field.Children) > 0 || len(field.Columns) > 0 {
			return schemaError(path, errLeafNested)
		}
		return nil
	default:
		return schemaError(path, fmt.Errorf("unsupported field type %q", field.Type))
	}
}

func schemaError(path string, err error) error {
	if path == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalidSchema, path, err)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
