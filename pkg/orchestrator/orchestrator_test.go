package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/document"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/templates"
	"github.com/goliatone/go-formdoc/pkg/validation"
)

type stubRenderer struct {
	last    model.Form
	options render.RenderOptions
}

func (s *stubRenderer) Name() string        { return "stub" }
func (s *stubRenderer) ContentType() string { return "text/plain" }

func (s *stubRenderer) Render(_ context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	s.last = form
	s.options = options
	return []byte("rendered:" + form.TemplateID), nil
}

func TestOrchestrator_Templates(t *testing.T) {
	orch := orchestrator.New()
	var ids []string
	for _, tpl := range orch.Templates() {
		ids = append(ids, tpl.ID)
	}
	if diff := cmp.Diff([]string{"test-report", "release-plan", "weekly-report"}, ids); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
	if _, err := orch.Template("missing"); !errors.Is(err, templates.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestOrchestrator_Documents(t *testing.T) {
	orch := orchestrator.New()
	docs, err := orch.Documents(context.Background(), orchestrator.DocumentRequest{
		TemplateID: "weekly-report",
		Values: map[string]any{
			"name": "张三",
			"date": "2024-01-01",
			"projects": []any{
				map[string]any{"projectName": "p1", "progress": "done", "plan": "ship"},
			},
		},
	})
	if err != nil {
		t.Fatalf("documents: %v", err)
	}
	if !strings.HasPrefix(docs.Markdown, "# 张三 周报 - 2024-01-01\n") {
		t.Fatalf("unexpected markdown:\n%s", docs.Markdown)
	}
	if !strings.Contains(docs.Markdown, "| p1 | done | ship | - |") {
		t.Fatalf("missing project row:\n%s", docs.Markdown)
	}
	if !strings.HasPrefix(docs.HTML, "<h1>张三 周报 - 2024-01-01</h1>") {
		t.Fatalf("unexpected html:\n%s", docs.HTML)
	}
}

func TestOrchestrator_DocumentsRoleAndPolicy(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithPolicy(document.PolicyEscape))
	docs, err := orch.Documents(context.Background(), orchestrator.DocumentRequest{
		TemplateID: "test-report",
		Values:     map[string]any{"projectName": "<b>Foo</b>", "remark": "secret"},
		Roles:      []model.Role{model.RolePM},
	})
	if err != nil {
		t.Fatalf("documents: %v", err)
	}
	if !strings.Contains(docs.HTML, "&lt;b&gt;Foo&lt;/b&gt;") {
		t.Fatalf("escape policy not applied:\n%s", docs.HTML)
	}
	if !strings.HasPrefix(docs.Markdown, "# <b>Foo</b> 提测文档\n") {
		t.Fatalf("markdown must stay unescaped:\n%s", docs.Markdown)
	}
	if !strings.Contains(docs.Markdown, "secret") {
		t.Fatalf("pm should see remark:\n%s", docs.Markdown)
	}
}

func TestOrchestrator_DocumentsValidate(t *testing.T) {
	orch := orchestrator.New()
	_, err := orch.Documents(context.Background(), orchestrator.DocumentRequest{
		TemplateID: "weekly-report",
		Values:     map[string]any{"name": "a"},
		Validate:   true,
	})
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if diff := cmp.Diff([]string{"date"}, errs.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_ValidateShape(t *testing.T) {
	orch := orchestrator.New()
	errs, err := orch.Validate(context.Background(), orchestrator.ValidateRequest{
		TemplateID: "weekly-report",
		Values:     map[string]any{"name": "a", "date": 20240101},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff([]string{"date"}, errs.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_FormUsesNamedRenderer(t *testing.T) {
	stub := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(stub)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(stub.Name()),
	)
	out, contentType, err := orch.Form(context.Background(), orchestrator.FormRequest{
		TemplateID:    "release-plan",
		RenderOptions: render.RenderOptions{Roles: []model.Role{model.RoleBackend}},
	})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if string(out) != "rendered:release-plan" || contentType != "text/plain" {
		t.Fatalf("unexpected output %q (%s)", out, contentType)
	}
	if len(stub.options.Roles) != 1 || stub.options.Roles[0] != model.RoleBackend {
		t.Fatalf("render options not forwarded: %+v", stub.options)
	}

	if _, _, err := orch.Form(context.Background(), orchestrator.FormRequest{TemplateID: "release-plan", Renderer: "pdf"}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestOrchestrator_DefaultHTMLRenderer(t *testing.T) {
	orch := orchestrator.New()
	out, contentType, err := orch.Form(context.Background(), orchestrator.FormRequest{TemplateID: "weekly-report"})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if !strings.HasPrefix(contentType, "text/html") {
		t.Fatalf("unexpected content type %q", contentType)
	}
	if !strings.Contains(string(out), `name="projects[0].projectName"`) {
		t.Fatalf("expected table control in form:\n%s", out)
	}
}

func TestOrchestrator_RequiresContext(t *testing.T) {
	orch := orchestrator.New()
	//nolint:staticcheck // nil context is the case under test
	if _, err := orch.Documents(nil, orchestrator.DocumentRequest{TemplateID: "weekly-report"}); err == nil {
		t.Fatalf("expected error for nil context")
	}
}
