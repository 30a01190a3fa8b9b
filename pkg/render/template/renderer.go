package template

import (
	"io"
)

// TemplateRenderer executes a named template against data. The rendered text
// is returned and also written to each writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
