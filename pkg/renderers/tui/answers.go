package tui

import (
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/values"
)

// answers holds the values collected so far plus the validation messages
// shown before re-asking a field.
type answers struct {
	bag    values.Values
	errors map[string][]string
}

// newAnswers copies prefill so the caller's map is never mutated.
func newAnswers(prefill map[string]any, errs map[string][]string) *answers {
	return &answers{
		bag:    values.Normalize(prefill).Clone(),
		errors: errs,
	}
}

// text is the value offered as the prompt default: the current answer, else
// the declared default.
func (a *answers) text(path string, field model.Field) string {
	if value, ok := a.bag.Get(path); ok {
		return values.Stringify(value)
	}
	if field.Default != nil {
		return values.Stringify(field.Default)
	}
	return ""
}

func (a *answers) checked(path string, field model.Field) bool {
	if _, ok := a.bag.Get(path); !ok && field.Default != nil {
		return values.Truthy(field.Default)
	}
	return a.bag.Bool(path)
}

func (a *answers) rowCount(path string) int {
	return len(a.bag.Rows(path))
}

func (a *answers) set(path string, value any) error {
	return a.bag.Set(path, value)
}
