package formdoc

import (
	"io/fs"

	"github.com/goliatone/go-formdoc/pkg/renderers/html"
	"github.com/goliatone/go-formdoc/pkg/templates"
)

// AssetsFS exposes the bundled form stylesheet so Go applications can serve
// it next to rendered forms.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formdoc.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}

// EmbeddedTemplates exposes the built-in form templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// SchemasFS exposes the YAML schemas of the built-in templates.
func SchemasFS() fs.FS {
	return templates.SchemasFS()
}
