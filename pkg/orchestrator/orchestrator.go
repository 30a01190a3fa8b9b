package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formdoc/pkg/document"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/renderers/html"
	"github.com/goliatone/go-formdoc/pkg/templates"
	"github.com/goliatone/go-formdoc/pkg/validation"
	"github.com/goliatone/go-formdoc/pkg/visibility"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithTemplates injects a template registry.
func WithTemplates(registry *templates.Registry) Option {
	return func(o *Orchestrator) {
		o.templates = registry
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithPolicy sets the HTML content policy applied to generated documents.
func WithPolicy(policy document.Policy) Option {
	return func(o *Orchestrator) {
		if policy != "" {
			o.policy = policy
		}
	}
}

// WithEvaluator replaces the role evaluator used for documents, forms and
// validation.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(o *Orchestrator) {
		if evaluator != nil {
			o.evaluator = evaluator
		}
	}
}

// WithSchemaTransformer registers a Transformer applied to template forms
// before they are rendered or validated.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator coordinates templates, renderers and validation. It applies
// sensible defaults (built-in templates, html renderer) while remaining open
// to dependency injection.
type Orchestrator struct {
	templates       *templates.Registry
	registry        *render.Registry
	defaultRenderer string
	policy          document.Policy
	evaluator       visibility.Evaluator
	transformer     Transformer
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		policy:          document.PolicyRaw,
		evaluator:       visibility.Roles,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// DocumentRequest describes a document generation.
type DocumentRequest struct {
	TemplateID string
	Values     map[string]any
	Roles      []model.Role
	// Validate runs the required-field and shape checks first; failures are
	// returned as validation.Errors and no document is produced.
	Validate bool
}

// Documents holds both generated formats.
type Documents struct {
	TemplateID string `json:"templateId"`
	Markdown   string `json:"markdown"`
	HTML       string `json:"html"`
}

// FormRequest describes a form rendering.
type FormRequest struct {
	TemplateID string
	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer      string
	RenderOptions render.RenderOptions
}

// ValidateRequest describes a validation run.
type ValidateRequest struct {
	TemplateID string
	Values     map[string]any
	Roles      []model.Role
}

// Templates lists the registered templates in registration order.
func (o *Orchestrator) Templates() []*templates.Template {
	if o.templates == nil {
		return nil
	}
	return o.templates.List()
}

// Template returns the template registered under id.
func (o *Orchestrator) Template(id string) (*templates.Template, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	return o.templates.Get(id)
}

// FormModel returns the renderer-facing form for id with any transformer
// applied.
func (o *Orchestrator) FormModel(ctx context.Context, id string) (model.Form, error) {
	tpl, err := o.Template(id)
	if err != nil {
		return model.Form{}, err
	}
	return o.formFor(ctx, tpl)
}

// Documents generates Markdown and HTML for the request.
func (o *Orchestrator) Documents(ctx context.Context, req DocumentRequest) (Documents, error) {
	if err := checkContext(ctx); err != nil {
		return Documents{}, err
	}
	tpl, err := o.Template(req.TemplateID)
	if err != nil {
		return Documents{}, err
	}

	if req.Validate {
		errs, err := o.Validate(ctx, ValidateRequest{TemplateID: req.TemplateID, Values: req.Values, Roles: req.Roles})
		if err != nil {
			return Documents{}, err
		}
		if len(errs) > 0 {
			return Documents{}, errs
		}
	}

	opts := o.documentOptions(req.Roles)
	return Documents{
		TemplateID: tpl.ID,
		Markdown:   tpl.GenerateMarkdown(req.Values, opts...),
		HTML:       tpl.GenerateHTML(req.Values, opts...),
	}, nil
}

// Form renders the template form through the named renderer and returns the
// output with its content type.
func (o *Orchestrator) Form(ctx context.Context, req FormRequest) ([]byte, string, error) {
	if err := checkContext(ctx); err != nil {
		return nil, "", err
	}
	form, err := o.FormModel(ctx, req.TemplateID)
	if err != nil {
		return nil, "", err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, "", err
	}
	output, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, "", fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, renderer.ContentType(), nil
}

// Validate runs the required-field check and, when that passes, the shape
// check. Only a missing template or a transformer failure produce an error;
// validation failures come back as Errors.
func (o *Orchestrator) Validate(ctx context.Context, req ValidateRequest) (validation.Errors, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	form, err := o.FormModel(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	errs := validation.Required(form.Fields, req.Values, visibility.Context{Roles: req.Roles}, validation.WithEvaluator(o.evaluator))
	if len(errs) > 0 {
		return errs, nil
	}
	return validation.CheckShape(form, req.Values), nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) formFor(ctx context.Context, tpl *templates.Template) (model.Form, error) {
	form := tpl.Form()
	if o.transformer == nil {
		return form, nil
	}
	form = cloneForm(form)
	if err := o.transformer.Transform(ctx, &form); err != nil {
		return model.Form{}, fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return form, nil
}

func (o *Orchestrator) documentOptions(roles []model.Role) []document.Option {
	return []document.Option{
		document.WithRoles(roles...),
		document.WithPolicy(o.policy),
		document.WithEvaluator(o.evaluator),
	}
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) ready() error {
	if o.initialiseErr != nil {
		return o.initialiseErr
	}
	if o.templates == nil {
		return errors.New("orchestrator: template registry is nil")
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.templates == nil {
		registry, err := templates.Builtin()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: builtin templates: %w", err)
		} else {
			o.templates = registry
		}
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New(html.WithEvaluator(o.evaluator))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	return ctx.Err()
}
