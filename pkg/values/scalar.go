package values

import (
	"fmt"
	"strconv"
	"strings"
)

// Stringify renders a scalar as display text. Strings pass through verbatim.
func Stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "是"
		}
		return ""
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

// Truthy mirrors the loose truthiness used by the generators: empty strings,
// false, nil, zero numbers, and empty collections are falsy.
func Truthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case string:
		return typed != ""
	case bool:
		return typed
	case float64:
		return typed != 0
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case []any:
		return len(typed) > 0
	case map[string]any:
		return len(typed) > 0
	default:
		return true
	}
}

// IsEmpty reports whether a value counts as "not filled in". Strings are
// trimmed first, so whitespace-only input is empty.
func IsEmpty(value any) bool {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	switch typed := value.(type) {
	case []any:
		for _, item := range typed {
			if !IsEmpty(item) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, item := range typed {
			if !IsEmpty(item) {
				return false
			}
		}
		return true
	}
	return !Truthy(value)
}
