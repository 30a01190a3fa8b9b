package storage

import (
	"encoding/json"
	"log/slog"

	"github.com/goliatone/go-formdoc/pkg/model"
)

// Persistence saves and restores value bags on top of a Store. Saving is
// fire-and-forget: failures are logged and never surface to the form.
type Persistence struct {
	store  Store
	logger *slog.Logger
}

// PersistenceOption customises a Persistence.
type PersistenceOption func(*Persistence)

// WithLogger sets the logger used for swallowed failures.
func WithLogger(logger *slog.Logger) PersistenceOption {
	return func(p *Persistence) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPersistence wraps store. A nil store falls back to a MemoryStore.
func NewPersistence(store Store, opts ...PersistenceOption) *Persistence {
	if store == nil {
		store = NewMemoryStore()
	}
	p := &Persistence{store: store, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Store exposes the underlying backend.
func (p *Persistence) Store() Store {
	return p.store
}

// Save writes values for templateID and mode.
func (p *Persistence) Save(templateID string, mode model.PreviewMode, values map[string]any) {
	key := Key(templateID, mode)
	if values == nil {
		values = map[string]any{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		p.logger.Error("persist values: encode", "template", templateID, "mode", mode, "key", key, "error", err)
		return
	}
	if err := p.store.Set(key, data); err != nil {
		p.logger.Error("persist values: store", "template", templateID, "mode", mode, "key", key, "error", err)
	}
}

// Load returns the saved values, or nil when nothing usable is stored.
func (p *Persistence) Load(templateID string, mode model.PreviewMode) map[string]any {
	key := Key(templateID, mode)
	data, ok, err := p.store.Get(key)
	if err != nil {
		p.logger.Error("load values: store", "template", templateID, "mode", mode, "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		p.logger.Error("load values: decode", "template", templateID, "mode", mode, "key", key, "error", err)
		return nil
	}
	return out
}

// Clear removes saved values for every preview mode of templateID.
func (p *Persistence) Clear(templateID string) {
	for _, mode := range model.PreviewModes() {
		key := Key(templateID, mode)
		if err := p.store.Delete(key); err != nil {
			p.logger.Error("clear values", "template", templateID, "mode", mode, "key", key, "error", err)
		}
	}
}
