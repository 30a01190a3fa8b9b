// Package preview renders Markdown-mode documents for display: as HTML for
// the web preview pane and as styled text for terminals.
package preview

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Terminal styles accepted by Terminal besides "auto".
const (
	StyleAuto   = "auto"
	StyleDark   = "dark"
	StyleLight  = "light"
	StyleNoTTY  = "notty"
	StyleASCII  = "ascii"
	DefaultWrap = 80
)

// HTML converts Markdown to an HTML fragment with the common extensions
// (tables, fenced code, autolinks) enabled.
func HTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML(markdown.NormalizeNewlines([]byte(md)), p, renderer))
}

// Terminal renders Markdown for a terminal using glamour. An empty style
// means "auto"; width <= 0 uses DefaultWrap.
func Terminal(md, style string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWrap
	}
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != StyleAuto {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("preview: terminal renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("preview: render markdown: %w", err)
	}
	return out, nil
}
