// Package values holds the form value bag. The canonical representation is a
// nested object: groups are maps, tables are slices of row maps. Dotted keys
// coming from older payloads or flat form posts are materialized into that
// shape at the boundary by Normalize and FromForm.
package values

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/schema"
)

// Values is a nested value bag keyed by field name.
type Values map[string]any

// Row is a single table row keyed by column name.
type Row map[string]any

// MaxRows bounds the row index a path may address. Paths reach Set from
// control names and JSON keys, so an unbounded index would let a tiny
// request allocate arbitrarily many empty rows.
const MaxRows = 500

// ErrTooManyRows is returned when a path indexes a row at or beyond MaxRows.
var ErrTooManyRows = errors.New("values: row index out of range")

// Normalize converts raw input into the canonical nested shape. Keys that
// contain a dot or a bracket index are treated as paths and expanded; when a
// path collides with a value already present in nested form, the nested value
// wins. Row slices typed as []map[string]any are converted to []any. Path
// keys that cannot be set are dropped; use Parse to see why.
func Normalize(raw map[string]any) Values {
	out, _ := normalize(raw, false)
	return out
}

// Parse is Normalize for untrusted input: the first path key that cannot be
// set (row index beyond MaxRows, list/object mismatch) fails the call.
func Parse(raw map[string]any) (Values, error) {
	return normalize(raw, true)
}

func normalize(raw map[string]any, strict bool) (Values, error) {
	out := make(Values, len(raw))
	var dotted []string
	for key, value := range raw {
		if isPathKey(key) {
			dotted = append(dotted, key)
			continue
		}
		out[key] = normalizeValue(value)
	}

	sort.Strings(dotted)
	for _, key := range dotted {
		if _, exists := out.Get(key); exists {
			continue
		}
		if err := out.Set(key, normalizeValue(raw[key])); err != nil && strict {
			return nil, err
		}
	}
	return out, nil
}

func isPathKey(key string) bool {
	return strings.ContainsAny(key, ".[")
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case Values:
		return map[string]any(Normalize(typed))
	case map[string]any:
		return map[string]any(Normalize(typed))
	case Row:
		return map[string]any(Normalize(typed))
	case []map[string]any:
		rows := make([]any, len(typed))
		for i, row := range typed {
			rows[i] = map[string]any(Normalize(row))
		}
		return rows
	case []Row:
		rows := make([]any, len(typed))
		for i, row := range typed {
			rows[i] = map[string]any(Normalize(row))
		}
		return rows
	case []any:
		items := make([]any, len(typed))
		for i, item := range typed {
			items[i] = normalizeValue(item)
		}
		return items
	default:
		return value
	}
}

// Get resolves a path such as "documents.prdDocument" or
// "projects.frontendProjects[0].repoUrl".
func (v Values) Get(path string) (any, bool) {
	segments := schema.Segments(path)
	if v == nil || len(segments) == 0 {
		return nil, false
	}

	var current any = map[string]any(v)
	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// String resolves a path to display text. Missing values and nil render as
// the empty string.
func (v Values) String(path string) string {
	value, ok := v.Get(path)
	if !ok {
		return ""
	}
	return Stringify(value)
}

// Bool resolves a checkbox value.
func (v Values) Bool(path string) bool {
	value, _ := v.Get(path)
	return Truthy(value)
}

// Rows resolves a table path to its rows. Non-object entries are skipped.
func (v Values) Rows(path string) []Row {
	value, ok := v.Get(path)
	if !ok {
		return nil
	}
	switch typed := value.(type) {
	case []any:
		rows := make([]Row, 0, len(typed))
		for _, item := range typed {
			if m, ok := item.(map[string]any); ok {
				rows = append(rows, Row(m))
			}
		}
		return rows
	case []map[string]any:
		rows := make([]Row, 0, len(typed))
		for _, item := range typed {
			rows = append(rows, Row(item))
		}
		return rows
	default:
		return nil
	}
}

// Has reports whether the path resolves to a non-empty value.
func (v Values) Has(path string) bool {
	value, ok := v.Get(path)
	return ok && !IsEmpty(value)
}

// Set writes value at path, creating intermediate maps and row slices as
// needed. A numeric segment after a slice-valued key indexes into the slice,
// growing it with empty rows when required.
func (v Values) Set(path string, value any) error {
	if v == nil {
		return fmt.Errorf("values: bag is nil")
	}
	segments := schema.Segments(path)
	if len(segments) == 0 {
		return fmt.Errorf("values: empty path")
	}
	return setSegments(map[string]any(v), segments, value, path)
}

func setSegments(node map[string]any, segments []string, value any, path string) error {
	key := segments[0]
	if len(segments) == 1 {
		node[key] = value
		return nil
	}

	next := segments[1]
	if idx, err := strconv.Atoi(next); err == nil {
		if idx < 0 {
			return fmt.Errorf("values: negative index in path %q", path)
		}
		if idx >= MaxRows {
			return fmt.Errorf("%w: %d in path %q (max %d)", ErrTooManyRows, idx, path, MaxRows-1)
		}
		rows, _ := node[key].([]any)
		if node[key] != nil && rows == nil {
			return fmt.Errorf("values: %q is not a list in path %q", key, path)
		}
		for len(rows) <= idx {
			rows = append(rows, map[string]any{})
		}
		node[key] = rows
		if len(segments) == 2 {
			rows[idx] = value
			return nil
		}
		row, ok := rows[idx].(map[string]any)
		if !ok {
			row = map[string]any{}
			rows[idx] = row
		}
		return setSegments(row, segments[2:], value, path)
	}

	child, ok := node[key].(map[string]any)
	if !ok {
		if node[key] != nil {
			return fmt.Errorf("values: %q is not an object in path %q", key, path)
		}
		child = map[string]any{}
		node[key] = child
	}
	return setSegments(child, segments[1:], value, path)
}

// Delete removes the value at path. Missing paths are ignored.
func (v Values) Delete(path string) {
	segments := schema.Segments(path)
	if len(segments) == 0 {
		return
	}
	parentPath := strings.Join(segments[:len(segments)-1], ".")
	last := segments[len(segments)-1]

	var parent any = map[string]any(v)
	if parentPath != "" {
		var ok bool
		if parent, ok = v.Get(parentPath); !ok {
			return
		}
	}
	if m, ok := parent.(map[string]any); ok {
		delete(m, last)
	}
}

// Clone returns a deep copy of the bag.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	return Values(deepCopy(map[string]any(v)).(map[string]any))
}

// String returns the display text of a row cell.
func (r Row) String(column string) string {
	return Stringify(r[column])
}

// Or returns the cell text, or fallback when the cell is empty.
func (r Row) Or(column, fallback string) string {
	if s := r.String(column); s != "" {
		return s
	}
	return fallback
}

// Empty reports whether every cell of the row is empty.
func (r Row) Empty() bool {
	for _, value := range r {
		if !IsEmpty(value) {
			return false
		}
	}
	return true
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}
