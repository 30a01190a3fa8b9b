// Package formdoc generates Markdown and HTML documents from form values
// collected against a template schema. The root package re-exports the
// common types and offers one-call helpers over the orchestrator.
package formdoc

import (
	"context"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/templates"
	"github.com/goliatone/go-formdoc/pkg/validation"
)

// Field is a node of a template schema.
type Field = model.Field

// Form is the renderer-facing view of a template.
type Form = model.Form

// Role is a viewer role used by the role filter.
type Role = model.Role

// Viewer roles.
const (
	RolePM       = model.RolePM
	RoleFrontend = model.RoleFrontend
	RoleBackend  = model.RoleBackend
)

// Template pairs a schema with its document generators.
type Template = templates.Template

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// DocumentRequest describes a document generation.
type DocumentRequest = orchestrator.DocumentRequest

// Documents holds the generated Markdown and HTML.
type Documents = orchestrator.Documents

// ValidationErrors is returned when values fail validation.
type ValidationErrors = validation.Errors

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate renders both documents for templateID. Roles restrict the output
// to the fields those viewers can see; no roles means the full document.
func Generate(ctx context.Context, templateID string, values map[string]any, roles []Role, options ...orchestrator.Option) (Documents, error) {
	gen := orchestrator.New(options...)
	return gen.Documents(ctx, orchestrator.DocumentRequest{
		TemplateID: templateID,
		Values:     values,
		Roles:      roles,
	})
}

// GenerateMarkdown is the Markdown half of Generate.
func GenerateMarkdown(ctx context.Context, templateID string, values map[string]any, roles ...Role) (string, error) {
	docs, err := Generate(ctx, templateID, values, roles)
	if err != nil {
		return "", err
	}
	return docs.Markdown, nil
}

// GenerateHTML is the HTML half of Generate.
func GenerateHTML(ctx context.Context, templateID string, values map[string]any, roles ...Role) (string, error) {
	docs, err := Generate(ctx, templateID, values, roles)
	if err != nil {
		return "", err
	}
	return docs.HTML, nil
}

// RenderForm renders the form of templateID with the named renderer ("html"
// when empty).
func RenderForm(ctx context.Context, templateID, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	out, _, err := gen.Form(ctx, orchestrator.FormRequest{
		TemplateID:    templateID,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
	return out, err
}
