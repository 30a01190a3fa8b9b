// Package session holds the state of one form being filled in: the template,
// the preview mode, the current values and the last generated documents.
// Edits schedule a debounced regeneration that also persists the values.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-formdoc/pkg/document"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/storage"
	"github.com/goliatone/go-formdoc/pkg/templates"
	"github.com/goliatone/go-formdoc/pkg/validation"
	"github.com/goliatone/go-formdoc/pkg/values"
	"github.com/goliatone/go-formdoc/pkg/visibility"
)

// Snapshot is a consistent view of the session outputs.
type Snapshot struct {
	TemplateID string
	Mode       model.PreviewMode
	Values     map[string]any
	Markdown   string
	HTML       string
}

// Session is the form-state controller for one template.
type Session struct {
	mu       sync.Mutex
	tpl      *templates.Template
	mode     model.PreviewMode
	bag      values.Values
	markdown string
	html     string

	roles       []model.Role
	policy      document.Policy
	evaluator   visibility.Evaluator
	persistence *storage.Persistence
	debouncer   *Debouncer
	logger      *slog.Logger
	onUpdate    func(Snapshot)
}

// New creates a session seeded with the template defaults. Call Load to
// restore saved values.
func New(tpl *templates.Template, opts ...Option) (*Session, error) {
	if tpl == nil {
		return nil, errors.New("session: template is required")
	}
	s := &Session{
		tpl:       tpl,
		mode:      model.ModeRich,
		policy:    document.PolicyRaw,
		evaluator: visibility.Roles,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.debouncer == nil {
		s.debouncer = NewDebouncer(DefaultDelay)
	}
	if _, err := model.ParsePreviewMode(string(s.mode)); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.bag = values.Normalize(tpl.Defaults())
	return s, nil
}

// Template returns the session template.
func (s *Session) Template() *templates.Template {
	return s.tpl
}

// Mode reports the current preview mode.
func (s *Session) Mode() model.PreviewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Values returns a copy of the current values.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bag.Clone()
}

// Markdown returns the last generated Markdown document.
func (s *Session) Markdown() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markdown
}

// HTML returns the last generated HTML document.
func (s *Session) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.html
}

// Content is the clipboard payload: HTML in rich mode, Markdown otherwise.
func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == model.ModeRich {
		return s.html
	}
	return s.markdown
}

// Set writes one value and schedules a regeneration.
func (s *Session) Set(path string, value any) error {
	s.mu.Lock()
	err := s.bag.Set(path, value)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.schedule()
	return nil
}

// Replace swaps the whole value bag and schedules a regeneration.
func (s *Session) Replace(raw map[string]any) {
	bag := values.Normalize(raw).Clone()
	s.mu.Lock()
	s.bag = bag
	s.mu.Unlock()
	s.schedule()
}

// Load restores the values saved for the current mode and regenerates
// immediately. It reports whether saved values were found; when none are,
// the template defaults are used.
func (s *Session) Load() bool {
	s.debouncer.Stop()

	s.mu.Lock()
	mode := s.mode
	s.mu.Unlock()

	var saved map[string]any
	if s.persistence != nil {
		saved = s.persistence.Load(s.tpl.ID, mode)
	}
	bag := values.Normalize(s.tpl.Defaults())
	if saved != nil {
		bag = values.Normalize(saved)
	}

	s.mu.Lock()
	s.bag = bag
	s.mu.Unlock()
	s.regenerate(false)
	return saved != nil
}

// SetMode switches the preview mode. Pending edits are saved under the old
// mode first, then the new mode's values are loaded.
func (s *Session) SetMode(mode model.PreviewMode) error {
	if _, err := model.ParsePreviewMode(string(mode)); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.debouncer.Flush()

	s.mu.Lock()
	if s.mode == mode {
		s.mu.Unlock()
		return nil
	}
	s.mode = mode
	s.mu.Unlock()

	s.Load()
	return nil
}

// Reset clears the values, the generated documents and both saved modes.
func (s *Session) Reset() {
	s.debouncer.Stop()

	s.mu.Lock()
	s.bag = values.Values{}
	s.markdown = ""
	s.html = ""
	s.mu.Unlock()

	if s.persistence != nil {
		s.persistence.Clear(s.tpl.ID)
	}
}

// Validate checks required fields against the current values.
func (s *Session) Validate() validation.Errors {
	s.mu.Lock()
	bag := s.bag.Clone()
	s.mu.Unlock()

	return validation.Required(s.tpl.Fields, bag, visibility.Context{Roles: s.roles}, validation.WithEvaluator(s.evaluator))
}

// Preview validates required fields and, when they pass, returns a snapshot
// generated from the latest values. Pending regenerations are folded in.
func (s *Session) Preview() (Snapshot, error) {
	if errs := s.Validate(); len(errs) > 0 {
		return Snapshot{}, errs
	}
	s.debouncer.Stop()
	return s.regenerate(true), nil
}

// Snapshot returns the current outputs without regenerating.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Flush runs a pending regeneration now.
func (s *Session) Flush() bool {
	return s.debouncer.Flush()
}

// Close flushes pending work.
func (s *Session) Close() error {
	s.debouncer.Flush()
	return nil
}

func (s *Session) schedule() {
	s.debouncer.Trigger(func() { s.regenerate(true) })
}

// regenerate rebuilds both documents from the latest values. When persist is
// set the values are saved for the current mode.
func (s *Session) regenerate(persist bool) Snapshot {
	s.mu.Lock()
	bag := s.bag.Clone()
	mode := s.mode
	s.mu.Unlock()

	opts := []document.Option{
		document.WithRoles(s.roles...),
		document.WithPolicy(s.policy),
		document.WithEvaluator(s.evaluator),
	}
	markdown := s.tpl.GenerateMarkdown(bag, opts...)
	html := s.tpl.GenerateHTML(bag, opts...)

	s.mu.Lock()
	s.markdown = markdown
	s.html = html
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if persist && s.persistence != nil {
		s.persistence.Save(s.tpl.ID, mode, bag)
	}
	s.logger.Debug("document regenerated", "template", s.tpl.ID, "mode", mode)
	if s.onUpdate != nil {
		s.onUpdate(snap)
	}
	return snap
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		TemplateID: s.tpl.ID,
		Mode:       s.mode,
		Values:     s.bag.Clone(),
		Markdown:   s.markdown,
		HTML:       s.html,
	}
}
