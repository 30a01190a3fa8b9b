package document

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Policy controls how user values are interpolated into HTML output.
// Markdown output is never altered.
type Policy string

const (
	// PolicyRaw interpolates values verbatim. Authors may embed markup in their
	// answers; the generated HTML is only as safe as its input.
	PolicyRaw Policy = "raw"
	// PolicyEscape HTML-escapes every value.
	PolicyEscape Policy = "escape"
	// PolicySanitize keeps user-authored formatting markup but strips scripts,
	// event handlers, and unsafe URLs.
	PolicySanitize Policy = "sanitize"
)

// ParsePolicy parses a policy name; blank input defaults to PolicyRaw.
func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyRaw:
		return PolicyRaw, nil
	case PolicyEscape:
		return PolicyEscape, nil
	case PolicySanitize:
		return PolicySanitize, nil
	default:
		return "", fmt.Errorf("document: unknown html policy %q", raw)
	}
}

// Apply transforms a value for inclusion in HTML output.
func (p Policy) Apply(value string) string {
	switch p {
	case PolicyEscape:
		return html.EscapeString(value)
	case PolicySanitize:
		if strings.TrimSpace(value) == "" {
			return value
		}
		return contentSanitizer().Sanitize(value)
	default:
		return value
	}
}

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

func contentSanitizer() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(false)
		contentPolicy = policy
	})
	return contentPolicy
}
