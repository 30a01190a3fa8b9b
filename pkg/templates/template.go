package templates

import (
	"github.com/goliatone/go-formdoc/pkg/document"
	"github.com/goliatone/go-formdoc/pkg/model"
)

// GenerateFunc renders one output format from resolved input.
type GenerateFunc func(in *document.Input) string

// Template pairs a field schema with its Markdown and HTML generators.
// Generators are pure: the same values and options always yield the same
// output.
type Template struct {
	ID          string
	Name        string
	Description string
	Fields      []model.Field

	markdown GenerateFunc
	html     GenerateFunc
}

// New builds a template from a definition and its generator pair.
func New(def Definition, markdown, html GenerateFunc) *Template {
	return &Template{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Fields:      def.Fields,
		markdown:    markdown,
		html:        html,
	}
}

// GenerateMarkdown renders the Markdown document for values.
func (t *Template) GenerateMarkdown(values map[string]any, opts ...document.Option) string {
	if t == nil || t.markdown == nil {
		return ""
	}
	return t.markdown(document.NewInput(t.Fields, values, opts...))
}

// GenerateHTML renders the HTML document for values.
func (t *Template) GenerateHTML(values map[string]any, opts ...document.Option) string {
	if t == nil || t.html == nil {
		return ""
	}
	return t.html(document.NewInput(t.Fields, values, opts...))
}

// Form returns the renderer-facing view of the template.
func (t *Template) Form() model.Form {
	return model.Form{
		TemplateID:  t.ID,
		Name:        t.Name,
		Description: t.Description,
		Fields:      t.Fields,
	}
}

// Defaults returns the declared default values keyed by path, used to seed
// an empty form.
func (t *Template) Defaults() map[string]any {
	out := make(map[string]any)
	collectDefaults(t.Fields, "", out)
	return out
}

func collectDefaults(fields []model.Field, prefix string, out map[string]any) {
	for _, field := range fields {
		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}
		switch field.Type {
		case model.FieldGroup:
			collectDefaults(field.Children, path, out)
		case model.FieldTable:
		default:
			if field.Default != nil {
				out[path] = field.Default
			}
		}
	}
}
