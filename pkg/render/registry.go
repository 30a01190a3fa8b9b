package render

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrRendererNotFound is returned when no renderer is registered under a name.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry maps renderer names ("html", "tui") to form renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds renderers under their Name. A nil renderer, a blank name or
// a name already taken fails the whole call before anything is added.
func (r *Registry) Register(renderers ...Renderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make(map[string]Renderer, len(renderers))
	for _, renderer := range renderers {
		if renderer == nil {
			return errors.New("render: renderer is required")
		}
		name := renderer.Name()
		if name == "" {
			return errors.New("render: renderer name is required")
		}
		if _, taken := r.renderers[name]; taken {
			return fmt.Errorf("render: renderer %q already registered", name)
		}
		if _, taken := pending[name]; taken {
			return fmt.Errorf("render: renderer %q registered twice", name)
		}
		pending[name] = renderer
	}
	maps.Copy(r.renderers, pending)
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(renderers ...Renderer) {
	if err := r.Register(renderers...); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// List returns the registered names in lexical order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.renderers))
}
