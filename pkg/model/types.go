package model

import (
	"fmt"
	"strings"
)

// FieldType enumerates the field kinds a template schema can declare. The set
// is closed: leaves hold a scalar value, groups nest child fields under their
// name, and tables hold an array of row objects keyed by column name.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldGroup    FieldType = "group"
	FieldTable    FieldType = "table"
)

// FieldTypes lists every supported kind in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{FieldText, FieldTextarea, FieldSelect, FieldRadio, FieldCheckbox, FieldGroup, FieldTable}
}

// Valid reports whether t is one of the supported kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldTextarea, FieldSelect, FieldRadio, FieldCheckbox, FieldGroup, FieldTable:
		return true
	default:
		return false
	}
}

// IsLeaf reports whether the kind holds a scalar value.
func (t FieldType) IsLeaf() bool {
	switch t {
	case FieldText, FieldTextarea, FieldSelect, FieldRadio, FieldCheckbox:
		return true
	default:
		return false
	}
}

// HasOptions reports whether the kind renders a fixed choice list.
func (t FieldType) HasOptions() bool {
	return t == FieldSelect || t == FieldRadio
}

// Role tags a field with the viewers it is meant for. Roles only drive
// visibility and are not an access control mechanism.
type Role string

const (
	RolePM       Role = "pm"
	RoleFrontend Role = "frontend"
	RoleBackend  Role = "backend"
)

// Roles returns every known role.
func Roles() []Role {
	return []Role{RolePM, RoleFrontend, RoleBackend}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RolePM, RoleFrontend, RoleBackend:
		return true
	default:
		return false
	}
}

// ParseRoles parses a comma separated role list such as "pm,frontend".
// Blank input yields nil, which callers treat as "no role filter".
func ParseRoles(raw string) ([]Role, error) {
	var out []Role
	seen := make(map[Role]struct{})
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed == "" {
			continue
		}
		role := Role(trimmed)
		if !role.Valid() {
			return nil, fmt.Errorf("model: unknown role %q", trimmed)
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	return out, nil
}

// Option is a single choice for select and radio fields.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Field describes one node of a template schema.
type Field struct {
	ID          string    `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Type        FieldType `json:"type" yaml:"type"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Default     any       `json:"defaultValue,omitempty" yaml:"default,omitempty"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Children    []Field   `json:"children,omitempty" yaml:"children,omitempty"`
	Columns     []Field   `json:"columns,omitempty" yaml:"columns,omitempty"`
	Roles       []Role    `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// HasRole reports whether the field is tagged with role.
func (f Field) HasRole(role Role) bool {
	for _, r := range f.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Column returns the named table column.
func (f Field) Column(name string) (Field, bool) {
	for _, col := range f.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Field{}, false
}

// Child returns the named group child.
func (f Field) Child(name string) (Field, bool) {
	for _, child := range f.Children {
		if child.Name == name {
			return child, true
		}
	}
	return Field{}, false
}

// Form is the renderer-facing view of a template: its identity and the field
// tree to draw controls for.
type Form struct {
	TemplateID  string  `json:"templateId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// PreviewMode selects which generated document is considered "active" for
// persistence, clipboard, and preview.
type PreviewMode string

const (
	ModeRich     PreviewMode = "rich"
	ModeMarkdown PreviewMode = "markdown"
)

// PreviewModes returns both modes.
func PreviewModes() []PreviewMode {
	return []PreviewMode{ModeRich, ModeMarkdown}
}

// ParsePreviewMode parses a mode name; blank input defaults to rich.
func ParsePreviewMode(raw string) (PreviewMode, error) {
	switch PreviewMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeRich:
		return ModeRich, nil
	case ModeMarkdown:
		return ModeMarkdown, nil
	default:
		return "", fmt.Errorf("model: unknown preview mode %q", raw)
	}
}
