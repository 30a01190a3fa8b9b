package templates

import (
	"errors"
	"fmt"
	"sync"
)

// ErrTemplateNotFound is returned when a template id is not registered.
var ErrTemplateNotFound = errors.New("templates: template not found")

// Registry stores templates by id and remembers registration order for
// listings.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
	order     []string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// Register adds a template. Duplicate ids return an error.
func (r *Registry) Register(tpl *Template) error {
	if tpl == nil {
		return fmt.Errorf("templates: template is required")
	}
	if tpl.ID == "" {
		return fmt.Errorf("templates: template id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[tpl.ID]; exists {
		return fmt.Errorf("templates: template %q already registered", tpl.ID)
	}
	r.templates[tpl.ID] = tpl
	r.order = append(r.order, tpl.ID)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(tpl *Template) {
	if err := r.Register(tpl); err != nil {
		panic(err)
	}
}

// Get retrieves a template by id.
func (r *Registry) Get(id string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tpl, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return tpl, nil
}

// MustGet panics if the template is missing.
func (r *Registry) MustGet(id string) *Template {
	tpl, err := r.Get(id)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Has reports whether a template is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.templates[id]
	return ok
}

// List returns templates in registration order.
func (r *Registry) List() []*Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out
}
