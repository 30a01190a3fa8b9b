package render

import "github.com/goliatone/go-formdoc/pkg/model"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form.
type RenderOptions struct {
	// Action is the submit target of HTML forms. Empty keeps the current URL.
	Action string
	// Values pre-populates rendered controls. Nested maps, dotted keys, and
	// row slices are accepted; renderers normalise them before lookup.
	Values map[string]any
	// Errors surfaces field-level validation feedback keyed by value path
	// ("projectName", "projects.frontendProjects[0].repoUrl").
	Errors map[string][]string
	// FormErrors lists messages that do not belong to a single field.
	FormErrors []string
	// Roles restricts the rendered controls to fields visible to the viewer.
	Roles []model.Role
	// Mode is the active preview mode, echoed back on submit.
	Mode model.PreviewMode
	// ExtraRows appends blank rows to every table so users can add entries
	// without client-side scripting.
	ExtraRows int
	// HiddenFields are emitted as hidden inputs alongside the controls.
	HiddenFields map[string]string
}
