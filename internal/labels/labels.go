// Package labels derives display labels from field and template names.
package labels

import (
	"regexp"
	"strings"
	"unicode"
)

var separators = regexp.MustCompile(`[_\-\s]+`)

// Humanize turns "frontendProjects" or "release-plan" into "Frontend
// Projects" / "Release Plan". Names that already contain non-ASCII letters are
// returned unchanged.
func Humanize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	for _, r := range name {
		if r > unicode.MaxASCII {
			return name
		}
	}

	var words []string
	for _, chunk := range separators.Split(name, -1) {
		if chunk == "" {
			continue
		}
		for _, word := range splitCamel(chunk) {
			words = append(words, titleCase(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) []string {
	var (
		words   []string
		current strings.Builder
	)
	runes := []rune(input)
	for i, r := range runes {
		if i > 0 && isBoundary(runes[i-1], r) {
			words = append(words, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func isBoundary(prev, r rune) bool {
	return (unicode.IsLower(prev) && unicode.IsUpper(r)) ||
		(unicode.IsLetter(prev) && unicode.IsDigit(r)) ||
		(unicode.IsDigit(prev) && unicode.IsLetter(r))
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
