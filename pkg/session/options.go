package session

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-formdoc/pkg/document"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/storage"
	"github.com/goliatone/go-formdoc/pkg/visibility"
)

// Option configures a Session.
type Option func(*Session)

// WithPersistence stores values through p. Without it values live only in
// the session.
func WithPersistence(p *storage.Persistence) Option {
	return func(s *Session) {
		s.persistence = p
	}
}

// WithDelay overrides the debounce delay.
func WithDelay(delay time.Duration) Option {
	return func(s *Session) {
		s.debouncer = NewDebouncer(delay)
	}
}

// WithMode selects the initial preview mode.
func WithMode(mode model.PreviewMode) Option {
	return func(s *Session) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// WithRoles restricts generation and validation to fields the roles can see.
func WithRoles(roles ...model.Role) Option {
	return func(s *Session) {
		s.roles = append(s.roles, roles...)
	}
}

// WithPolicy selects the HTML content policy.
func WithPolicy(policy document.Policy) Option {
	return func(s *Session) {
		if policy != "" {
			s.policy = policy
		}
	}
}

// WithEvaluator replaces the role evaluator.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(s *Session) {
		if evaluator != nil {
			s.evaluator = evaluator
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnUpdate registers a callback invoked after every regeneration.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(s *Session) {
		s.onUpdate = fn
	}
}
