package tui

import "github.com/goliatone/go-formdoc/pkg/visibility"

// OutputFormat selects what Render returns once every prompt is answered.
type OutputFormat string

const (
	OutputFormatJSON       OutputFormat = "json"
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ChangeHook receives the value path and stored value after each answer.
type ChangeHook func(path string, value any)

type Option func(*Renderer)

func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithChangeHook lets sessions schedule regeneration as answers arrive.
func WithChangeHook(hook ChangeHook) Option {
	return func(r *Renderer) { r.onChange = hook }
}

// WithEvaluator replaces the role evaluator deciding which fields are asked.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(r *Renderer) {
		if evaluator != nil {
			r.evaluator = evaluator
		}
	}
}
