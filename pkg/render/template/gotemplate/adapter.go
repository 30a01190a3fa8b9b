package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formdoc/pkg/render/template"
)

// Option tweaks the engine before its loader is built.
type Option func(*Engine)

// WithFS loads templates from fsys.
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.source = fsys
	}
}

// WithExtension sets the suffix appended to template names that lack it.
// Defaults to ".tpl".
func WithExtension(ext string) Option {
	return func(e *Engine) {
		if ext = strings.TrimSpace(ext); ext != "" {
			e.ext = ext
		}
	}
}

// Engine executes pongo2 templates loaded from an fs.FS. Parsed templates are
// cached by path and shared between goroutines.
type Engine struct {
	source fs.FS
	ext    string
	set    *pongo2.TemplateSet

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

var registerFilters sync.Once

// New builds an engine. WithFS is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		ext:   ".tpl",
		cache: make(map[string]*pongo2.Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.source == nil {
		return nil, errors.New("gotemplate: templates fs is required")
	}
	e.set = pongo2.NewSet("formdoc", pongo2.NewFSLoader(e.source))
	registerFilters.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{
			"trim":  filterTrim,
			"domid": filterDOMID,
		} {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
	return e, nil
}

// RenderTemplate executes the template at name, appending the engine
// extension when missing, and copies the result to every writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.load(path)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s: convert data: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", path, err)
	}
	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) load(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %s: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

// toContext flattens data into plain maps, slices and scalars so templates
// see JSON field names regardless of the Go types the caller used.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("template data must be an object: %w", err)
	}
	return ctx, nil
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

var domIDReplacer = strings.NewReplacer(".", "-", "[", "-", "]", "")

// filterDOMID turns a value path into an element id:
// "projects.frontendProjects[0].repoUrl" -> "field-projects-frontendProjects-0-repoUrl".
func filterDOMID(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	path := strings.TrimSpace(in.String())
	if path == "" {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue("field-" + domIDReplacer.Replace(path)), nil
}
