package schema

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
)

// SkipChildren can be returned from a WalkFunc to skip a group's children or
// a table's columns.
var SkipChildren = errors.New("schema: skip children")

// Entry pairs a field with its resolved value path.
type Entry struct {
	Field model.Field
	Path  string
	Depth int
	// Column is set when the entry describes a table column; Path is then the
	// column path relative to a row ("table.column").
	Column bool
}

// WalkFunc is called for every field visited by Walk.
type WalkFunc func(entry Entry) error

// Walk visits fields pre-order. Groups recurse with path prefix.name; a table
// entry's path names its row array and its columns are reported with
// Column set and path table.column.
func Walk(fields []model.Field, prefix string, fn WalkFunc) error {
	return walk(fields, prefix, 0, false, fn)
}

func walk(fields []model.Field, prefix string, depth int, columns bool, fn WalkFunc) error {
	for _, field := range fields {
		entry := Entry{Field: field, Path: Join(prefix, field.Name), Depth: depth, Column: columns}
		err := fn(entry)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}

		switch field.Type {
		case model.FieldGroup:
			if err := walk(field.Children, entry.Path, depth+1, false, fn); err != nil {
				return err
			}
		case model.FieldTable:
			if err := walk(field.Columns, entry.Path, depth+1, true, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Leaves returns every non-column leaf and every table entry, in schema order.
// Groups are flattened away.
func Leaves(fields []model.Field) []Entry {
	var out []Entry
	_ = Walk(fields, "", func(entry Entry) error {
		switch {
		case entry.Field.Type == model.FieldGroup:
			return nil
		case entry.Field.Type == model.FieldTable:
			out = append(out, entry)
			return SkipChildren
		default:
			out = append(out, entry)
			return nil
		}
	})
	return out
}

// Paths lists the resolved path of every field, columns included.
func Paths(fields []model.Field) []string {
	var out []string
	_ = Walk(fields, "", func(entry Entry) error {
		out = append(out, entry.Path)
		return nil
	})
	return out
}

// Lookup resolves a value path to the field that owns it. Row indices may be
// written as "table[0].column" or "table.0.column".
func Lookup(fields []model.Field, path string) (model.Field, bool) {
	segments := Segments(path)
	if len(segments) == 0 {
		return model.Field{}, false
	}

	level := fields
	var current model.Field
	for i := 0; i < len(segments); i++ {
		found := false
		for _, field := range level {
			if field.Name == segments[i] {
				current, found = field, true
				break
			}
		}
		if !found {
			return model.Field{}, false
		}

		switch current.Type {
		case model.FieldGroup:
			level = current.Children
		case model.FieldTable:
			if i+1 < len(segments) {
				if _, err := strconv.Atoi(segments[i+1]); err == nil {
					i++
				}
			}
			level = current.Columns
		default:
			level = nil
		}
	}
	return current, true
}

// Join appends name to a dotted prefix.
func Join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if name == "" {
		return prefix
	}
	return prefix + "." + name
}

// RowPath addresses a single table row: "table[index]".
func RowPath(tablePath string, index int) string {
	return tablePath + "[" + strconv.Itoa(index) + "]"
}

// CellPath addresses a single table cell: "table[index].column".
func CellPath(tablePath string, index int, column string) string {
	return RowPath(tablePath, index) + "." + column
}

// Segments splits a value path into its parts, turning bracket indices into
// plain numeric segments.
func Segments(path string) []string {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return nil
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	parts := strings.Split(clean, ".")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
