package render

import (
	"context"

	"github.com/goliatone/go-formdoc/pkg/model"
)

// Renderer converts a template form into a byte representation (HTML form
// markup, terminal answers, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, options RenderOptions) ([]byte, error)
}
