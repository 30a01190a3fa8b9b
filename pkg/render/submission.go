package render

import (
	"fmt"
	"slices"
	"strings"
)

// Names of the hidden inputs the HTML form posts back alongside field values.
const (
	ModeField  = "_mode"
	RolesField = "_roles"
)

// HiddenField is a hidden input rendered after the visible controls.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden builds a HiddenField, formatting value with fmt.Sprint.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// HiddenFields combines caller supplied inputs with extra ones into a list
// sorted by name. Blank names are dropped and extra wins on collisions.
func HiddenFields(base map[string]string, extra ...HiddenField) []HiddenField {
	byName := make(map[string]string, len(base)+len(extra))
	for name, value := range base {
		if name = strings.TrimSpace(name); name != "" {
			byName[name] = value
		}
	}
	for _, field := range extra {
		if name := strings.TrimSpace(field.Name); name != "" {
			byName[name] = field.Value
		}
	}
	if len(byName) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(byName))
	for name, value := range byName {
		out = append(out, HiddenField{Name: name, Value: value})
	}
	slices.SortFunc(out, func(a, b HiddenField) int { return strings.Compare(a.Name, b.Name) })
	return out
}
