package validation

import (
	"strings"
)

// FieldError is a validation failure attached to a value path. Path is empty
// for form-level failures.
type FieldError struct {
	Path    string `json:"path,omitempty"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message"`
}

// Errors collects field errors in schema order. A nil or empty Errors means
// the values passed.
type Errors []FieldError

// Error implements error.
func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		if fe.Path == "" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fe.Path+": "+fe.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when there are no failures. Use it to
// avoid handing out a typed nil.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Map groups field messages by path, the shape render options expect.
// Form-level messages are skipped; see FormMessages.
func (e Errors) Map() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		if fe.Path == "" {
			continue
		}
		out[fe.Path] = append(out[fe.Path], fe.Message)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FormMessages returns messages without a field path.
func (e Errors) FormMessages() []string {
	var out []string
	for _, fe := range e {
		if fe.Path == "" {
			out = append(out, fe.Message)
		}
	}
	return out
}

// Paths lists the failing paths in order, without duplicates.
func (e Errors) Paths() []string {
	var out []string
	seen := make(map[string]struct{}, len(e))
	for _, fe := range e {
		if fe.Path == "" {
			continue
		}
		if _, ok := seen[fe.Path]; ok {
			continue
		}
		seen[fe.Path] = struct{}{}
		out = append(out, fe.Path)
	}
	return out
}
