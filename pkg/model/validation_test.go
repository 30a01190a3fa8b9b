package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateFields_AcceptsWellFormedTree(t *testing.T) {
	fields := []Field{
		{Name: "title", Type: FieldText, Label: "Title", Required: true},
		{Name: "docs", Type: FieldGroup, Label: "Docs", Children: []Field{
			{Name: "prd", Type: FieldText},
			{Name: "kind", Type: FieldSelect, Options: []Option{{Label: "A", Value: "a"}}},
		}},
		{Name: "rows", Type: FieldTable, Columns: []Field{
			{Name: "name", Type: FieldText},
			{Name: "done", Type: FieldCheckbox},
		}, Roles: []Role{RoleFrontend}},
	}

	if err := ValidateFields(fields); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateFields_Violations(t *testing.T) {
	cases := []struct {
		name   string
		fields []Field
		want   string
	}{
		{
			name:   "missing name",
			fields: []Field{{Type: FieldText}},
			want:   "field name is required",
		},
		{
			name:   "duplicate name",
			fields: []Field{{Name: "a", Type: FieldText}, {Name: "a", Type: FieldTextarea}},
			want:   `a: duplicate field name "a"`,
		},
		{
			name:   "group without children",
			fields: []Field{{Name: "g", Type: FieldGroup}},
			want:   "g: group fields require children",
		},
		{
			name:   "table without columns",
			fields: []Field{{Name: "t", Type: FieldTable}},
			want:   "t: table fields require columns",
		},
		{
			name: "table with group column",
			fields: []Field{{Name: "t", Type: FieldTable, Columns: []Field{
				{Name: "g", Type: FieldGroup, Children: []Field{{Name: "x", Type: FieldText}}},
			}}},
			want: "t.g: table columns must be leaf fields",
		},
		{
			name:   "leaf with children",
			fields: []Field{{Name: "x", Type: FieldText, Children: []Field{{Name: "y", Type: FieldText}}}},
			want:   "x: leaf fields cannot declare children or columns",
		},
		{
			name:   "radio without options",
			fields: []Field{{Name: "r", Type: FieldRadio}},
			want:   "r: select and radio fields require options",
		},
		{
			name:   "unknown type",
			fields: []Field{{Name: "n", Type: "number"}},
			want:   `n: unsupported field type "number"`,
		},
		{
			name:   "unknown role",
			fields: []Field{{Name: "n", Type: FieldText, Roles: []Role{"qa"}}},
			want:   `n: unknown role "qa"`,
		},
		{
			name: "nested duplicate",
			fields: []Field{{Name: "g", Type: FieldGroup, Children: []Field{
				{Name: "a", Type: FieldText}, {Name: "a", Type: FieldText},
			}}},
			want: "g.a: duplicate",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFields(tc.fields)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !errors.Is(err, ErrInvalidSchema) {
				t.Fatalf("expected ErrInvalidSchema, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestParseRoles(t *testing.T) {
	roles, err := ParseRoles(" Frontend, backend,frontend ,")
	if err != nil {
		t.Fatalf("parse roles: %v", err)
	}
	if diff := cmp.Diff([]Role{RoleFrontend, RoleBackend}, roles); diff != "" {
		t.Fatalf("roles mismatch (-want +got):\n%s", diff)
	}

	none, err := ParseRoles("")
	if err != nil || none != nil {
		t.Fatalf("expected nil roles for blank input, got %v, %v", none, err)
	}

	if _, err := ParseRoles("pm,designer"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestParsePreviewMode(t *testing.T) {
	for raw, want := range map[string]PreviewMode{
		"":         ModeRich,
		"rich":     ModeRich,
		"Markdown": ModeMarkdown,
	} {
		got, err := ParsePreviewMode(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %s, got %s", raw, want, got)
		}
	}
	if _, err := ParsePreviewMode("pdf"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestFieldTypeClassification(t *testing.T) {
	var leaves []FieldType
	for _, kind := range FieldTypes() {
		if !kind.Valid() {
			t.Fatalf("%s should be valid", kind)
		}
		if kind.IsLeaf() {
			leaves = append(leaves, kind)
		}
	}
	want := []FieldType{FieldText, FieldTextarea, FieldSelect, FieldRadio, FieldCheckbox}
	if diff := cmp.Diff(want, leaves); diff != "" {
		t.Fatalf("leaf kinds mismatch (-want +got):\n%s", diff)
	}
}
