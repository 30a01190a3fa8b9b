package document

import (
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/values"
	"github.com/goliatone/go-formdoc/pkg/visibility"
)

// Option configures document generation.
type Option func(*config)

type config struct {
	roles     []model.Role
	policy    Policy
	evaluator visibility.Evaluator
}

// WithRoles restricts the document to fields visible to the given viewer
// roles. No roles means the full document.
func WithRoles(roles ...model.Role) Option {
	return func(cfg *config) {
		cfg.roles = append(cfg.roles, roles...)
	}
}

// WithPolicy selects how values are interpolated into HTML.
func WithPolicy(policy Policy) Option {
	return func(cfg *config) {
		if policy != "" {
			cfg.policy = policy
		}
	}
}

// WithEvaluator replaces the role evaluator used to decide visibility.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(cfg *config) {
		if evaluator != nil {
			cfg.evaluator = evaluator
		}
	}
}

// Input is what a generator reads: normalized values plus the visibility
// decisions for the requested viewer.
type Input struct {
	values values.Values
	hidden map[string]struct{}
	policy Policy
}

// NewInput normalizes raw values and resolves visibility for fields. An
// evaluator failure hides nothing: generation never fails because of the
// role filter.
func NewInput(fields []model.Field, raw map[string]any, opts ...Option) *Input {
	cfg := config{policy: PolicyRaw, evaluator: visibility.Roles}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	bag := values.Normalize(raw)
	hidden, err := visibility.HiddenPaths(fields, cfg.evaluator, visibility.Context{
		Roles:  cfg.roles,
		Values: bag,
	})
	if err != nil {
		hidden = nil
	}
	return &Input{values: bag, hidden: hidden, policy: cfg.policy}
}

// Policy reports the HTML policy in effect.
func (in *Input) Policy() Policy {
	return in.policy
}

// Values exposes the normalized bag.
func (in *Input) Values() values.Values {
	return in.values
}

// Visible reports whether the field at path is shown to the viewer.
func (in *Input) Visible(path string) bool {
	return !visibility.Hidden(in.hidden, path)
}

// Text returns the value at path, or "" when hidden or missing.
func (in *Input) Text(path string) string {
	if !in.Visible(path) {
		return ""
	}
	return in.values.String(path)
}

// Has reports whether the field is visible and filled in.
func (in *Input) Has(path string) bool {
	return in.Visible(path) && in.values.Has(path)
}

// Rows returns the table rows at path, or nil when hidden.
func (in *Input) Rows(path string) []values.Row {
	if !in.Visible(path) {
		return nil
	}
	return in.values.Rows(path)
}

// Title joins a value with a fixed suffix, dropping the separator when the
// value is empty: Title("projectName", "提测文档").
func (in *Input) Title(path, suffix string) string {
	return strings.TrimSpace(in.Text(path) + " " + suffix)
}
