package visibility

import "github.com/goliatone/go-formdoc/pkg/model"

// Evaluator determines whether a field should be shown for the current
// viewer. Path is the field's resolved value path.
type Evaluator interface {
	Visible(path string, field model.Field, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Roles lists the viewer roles
// requested by the caller; an empty list means "no filter". Values carries
// the current form values and Extras lets callers inject anything else such
// as feature flags.
type Context struct {
	Roles  []model.Role
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(path string, field model.Field, ctx Context) (bool, error)

// Visible delegates to the underlying function.
func (fn EvaluatorFunc) Visible(path string, field model.Field, ctx Context) (bool, error) {
	return fn(path, field, ctx)
}

// Roles is the default evaluator. A field is visible when no viewer roles are
// requested, when the field declares no roles, or when the two sets
// intersect.
var Roles Evaluator = EvaluatorFunc(func(_ string, field model.Field, ctx Context) (bool, error) {
	return RolesIntersect(field.Roles, ctx.Roles), nil
})

// RolesIntersect applies the role rule to raw role lists.
func RolesIntersect(fieldRoles, viewerRoles []model.Role) bool {
	if len(viewerRoles) == 0 || len(fieldRoles) == 0 {
		return true
	}
	for _, want := range viewerRoles {
		for _, have := range fieldRoles {
			if want == have {
				return true
			}
		}
	}
	return false
}
