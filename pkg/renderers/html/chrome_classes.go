package html

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm     ChromeClass = "formdoc-form"
	ClassHeader   ChromeClass = "formdoc-header"
	ClassFieldset ChromeClass = "formdoc-fieldset"
	ClassField    ChromeClass = "formdoc-field"
	ClassTable    ChromeClass = "formdoc-table"
	ClassActions  ChromeClass = "formdoc-actions"
	ClassErrors   ChromeClass = "formdoc-errors"
	ClassError    ChromeClass = "formdoc-error"
)

func chromeClasses() map[string]any {
	return map[string]any{
		"form":     string(ClassForm),
		"header":   string(ClassHeader),
		"fieldset": string(ClassFieldset),
		"field":    string(ClassField),
		"table":    string(ClassTable),
		"actions":  string(ClassActions),
		"errors":   string(ClassErrors),
		"error":    string(ClassError),
	}
}
