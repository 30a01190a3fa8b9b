package formdoc

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestGenerateMarkdown(t *testing.T) {
	md, err := GenerateMarkdown(context.Background(), "release-plan", map[string]any{"projectName": "Foo", "version": "1.2.0"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(md, "# Foo 发布计划\n") || !strings.Contains(md, "1.2.0") {
		t.Fatalf("unexpected markdown:\n%s", md)
	}
}

func TestGenerateHTML_UnknownTemplate(t *testing.T) {
	if _, err := GenerateHTML(context.Background(), "nope", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestRenderForm(t *testing.T) {
	out, err := RenderForm(context.Background(), "weekly-report", "", RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if !strings.Contains(string(out), "<form") {
		t.Fatalf("expected a form, got:\n%s", out)
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.ReadFile(AssetsFS(), "formdoc.css"); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/form.tpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	entries, err := fs.ReadDir(SchemasFS(), ".")
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected schema files, got %v (%v)", entries, err)
	}
}
