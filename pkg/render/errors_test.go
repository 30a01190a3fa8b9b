package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render"
)

func errorForm() model.Form {
	return model.Form{
		TemplateID: "test-report",
		Fields: []model.Field{
			{Name: "projectName", Type: model.FieldText},
			{
				Name: "documents",
				Type: model.FieldGroup,
				Children: []model.Field{
					{Name: "prdDocument", Type: model.FieldText},
					{Name: "uiDocument", Type: model.FieldText},
				},
			},
			{
				Name: "projects",
				Type: model.FieldGroup,
				Children: []model.Field{
					{
						Name: "frontendProjects",
						Type: model.FieldTable,
						Columns: []model.Field{
							{Name: "repoUrl", Type: model.FieldText},
							{Name: "gitUrl", Type: model.FieldText},
						},
					},
				},
			},
		},
	}
}

func TestMapErrorPayload_PathVariants(t *testing.T) {
	payload := map[string][]string{
		"/projectName":                           {"请输入项目名称", " 请输入项目名称 "},
		"documents.prdDocument":                  {"请输入PRD原型稿"},
		"/projects/frontendProjects/0/repoUrl":   {"请输入项目名"},
		"projects.frontendProjects[2].gitUrl":    {"请输入Git地址"},
		"#/projects/frontendProjects/1":          {"row invalid"},
		"projects.frontendProjects.0.unknownCol": {"column unknown"},
		"/documents":                             {"documents missing"},
		"/documents/uiDocument/~1link":           {"UI malformed"},
		"/unknown":                               {"Should fall back to form errors"},
		"":                                       {"Unscoped form error", "  "},
		"/projectName/extra":                     {},
	}

	mapped := render.MapErrorPayload(errorForm(), payload)

	wantFields := map[string][]string{
		"projectName":                          {"请输入项目名称"},
		"documents.prdDocument":                {"请输入PRD原型稿"},
		"projects.frontendProjects[0].repoUrl": {"请输入项目名"},
		"projects.frontendProjects[2].gitUrl":  {"请输入Git地址"},
		"projects.frontendProjects":            {"row invalid", "column unknown"},
		"documents":                            {"documents missing"},
		"documents.uiDocument":                 {"UI malformed"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(errorForm(), nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
