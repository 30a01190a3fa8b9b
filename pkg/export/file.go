package export

import (
	"embed"
	"fmt"
	"mime"
	"strings"
	"time"

	rendertemplate "github.com/goliatone/go-formdoc/pkg/render/template"
	"github.com/goliatone/go-formdoc/pkg/render/template/gotemplate"
	theme "github.com/goliatone/go-theme"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Content types of exported files.
const (
	ContentTypeMarkdown = "text/markdown; charset=utf-8"
	ContentTypeDoc      = "application/msword"
)

// File is an exported document ready to be written or downloaded.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ContentDisposition returns the attachment header value for the file.
// Non-ASCII names are sent as an RFC 2231 filename* parameter.
func (f File) ContentDisposition() string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}); v != "" {
		return v
	}
	return "attachment"
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithVariant selects the theme variant used for .doc stylesheets.
func WithVariant(variant string) Option {
	return func(e *Exporter) {
		if variant != "" {
			e.variant = variant
		}
	}
}

// WithThemeSelector replaces the selector resolving stylesheet tokens.
func WithThemeSelector(selector theme.ThemeSelector, themeName string) Option {
	return func(e *Exporter) {
		if selector != nil {
			e.selector = selector
			e.themeName = themeName
		}
	}
}

// WithClock overrides the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// Exporter builds Markdown and Word files from generated documents.
type Exporter struct {
	templates rendertemplate.TemplateRenderer
	selector  theme.ThemeSelector
	themeName string
	variant   string
	now       func() time.Time
}

// NewExporter creates an exporter using the built-in theme.
func NewExporter(opts ...Option) (*Exporter, error) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(embeddedTemplates),
		gotemplate.WithExtension(".tpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("export: configure templates: %w", err)
	}
	e := &Exporter{
		templates: engine,
		themeName: ThemeName,
		variant:   VariantDefault,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.selector == nil {
		selector, err := NewThemeSelector(DefaultManifest())
		if err != nil {
			return nil, err
		}
		e.selector = selector
	}
	if _, err := e.selector.Select(e.themeName, e.variant); err != nil {
		return nil, err
	}
	return e, nil
}

// Markdown wraps a Markdown document as a .md file.
func (e *Exporter) Markdown(templateName, markdown string) File {
	return MarkdownFile(templateName, markdown, e.now())
}

// Doc wraps an HTML fragment in a styled HTML document served as a Word file.
func (e *Exporter) Doc(templateName, html string) (File, error) {
	at := e.now()
	selection, err := e.selector.Select(e.themeName, e.variant)
	if err != nil {
		return File{}, err
	}
	out, err := e.templates.RenderTemplate("templates/doc", map[string]any{
		"title":      Title(templateName, at),
		"stylesheet": Stylesheet(selection),
		"body":       strings.TrimRight(html, "\n"),
	})
	if err != nil {
		return File{}, fmt.Errorf("export: render doc: %w", err)
	}
	return File{
		Name:        FileName(templateName, at, "doc"),
		ContentType: ContentTypeDoc,
		Data:        []byte(out),
	}, nil
}

// MarkdownFile wraps a Markdown document as a .md file stamped with at.
func MarkdownFile(templateName, markdown string, at time.Time) File {
	return File{
		Name:        FileName(templateName, at, "md"),
		ContentType: ContentTypeMarkdown,
		Data:        []byte(markdown),
	}
}
