// Package html renders template forms as server-side HTML. Every leaf field
// becomes one control named by its value path, groups become fieldsets, and
// tables become grids of inputs with one row per existing value row plus
// optional blank rows. Posting the form back and feeding it to
// values.FromForm recovers the nested value bag.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render"
	rendertemplate "github.com/goliatone/go-formdoc/pkg/render/template"
	"github.com/goliatone/go-formdoc/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formdoc/pkg/values"
	"github.com/goliatone/go-formdoc/pkg/visibility"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	evaluator        visibility.Evaluator
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must mirror the layout of TemplatesFS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithEvaluator replaces the role evaluator deciding which controls render.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(cfg *config) {
		if evaluator != nil {
			cfg.evaluator = evaluator
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	evaluator visibility.Evaluator
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), evaluator: visibility.Roles}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, evaluator: cfg.evaluator}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the <form> fragment for form. Only fields visible to
// options.Roles are emitted.
func (r *Renderer) Render(_ context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	bag := values.Normalize(options.Values)
	fields, err := visibility.FilterFields(form.Fields, r.evaluator, visibility.Context{
		Roles:  options.Roles,
		Values: bag,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	fr := &fieldRenderer{
		templates: r.templates,
		values:    bag,
		errors:    options.Errors,
		extraRows: options.ExtraRows,
	}
	body, err := fr.renderAll(fields, "")
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	result, err := r.templates.RenderTemplate("templates/form", map[string]any{
		"form": map[string]any{
			"templateId":  form.TemplateID,
			"name":        form.Name,
			"description": form.Description,
		},
		"action":     options.Action,
		"fields":     body,
		"hidden":     hiddenFields(options),
		"formErrors": render.MergeFormErrors(options.FormErrors),
		"classes":    chromeClasses(),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func hiddenFields(options render.RenderOptions) []render.HiddenField {
	var extra []render.HiddenField
	if options.Mode != "" {
		extra = append(extra, render.Hidden(render.ModeField, options.Mode))
	}
	if len(options.Roles) > 0 {
		roles := make([]string, 0, len(options.Roles))
		for _, role := range options.Roles {
			roles = append(roles, string(role))
		}
		extra = append(extra, render.Hidden(render.RolesField, strings.Join(roles, ",")))
	}
	return render.HiddenFields(options.HiddenFields, extra...)
}
