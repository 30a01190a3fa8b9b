package export

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeName is the manifest name of the built-in document theme.
const ThemeName = "formdoc-doc"

// Built-in variants.
const (
	VariantDefault = "default"
	VariantCompact = "compact"
)

// Token keys read by the stylesheet.
const (
	TokenFontFamily       = "font-family"
	TokenTextColor        = "text-color"
	TokenBorderColor      = "border-color"
	TokenHeaderBackground = "header-background"
	TokenCodeBackground   = "code-background"
	TokenCellPadding      = "cell-padding"
	TokenH1Size           = "h1-size"
	TokenH2Size           = "h2-size"
	TokenH3Size           = "h3-size"
)

// DefaultManifest describes the stylesheet used by Word exports.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenFontFamily:       "Arial, sans-serif",
			TokenTextColor:        "#333",
			TokenBorderColor:      "#ddd",
			TokenHeaderBackground: "#f2f2f2",
			TokenCodeBackground:   "#f5f5f5",
			TokenCellPadding:      "8px",
			TokenH1Size:           "24px",
			TokenH2Size:           "20px",
			TokenH3Size:           "16px",
		},
		Variants: map[string]theme.Variant{
			VariantDefault: {},
			VariantCompact: {
				Tokens: map[string]string{
					TokenCellPadding: "4px",
					TokenH1Size:      "20px",
					TokenH2Size:      "16px",
					TokenH3Size:      "14px",
				},
			},
		},
	}
}

// manifestSelector resolves theme selections from registered manifests.
type manifestSelector struct {
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*manifestSelector)(nil)

// NewThemeSelector registers manifests with a go-theme registry and returns a
// selector over them.
func NewThemeSelector(manifests ...*theme.Manifest) (theme.ThemeSelector, error) {
	registry := theme.NewRegistry()
	sel := &manifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("export: register theme %q: %w", manifest.Name, err)
		}
		sel.manifests[manifest.Name] = manifest
	}
	return sel, nil
}

func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("export: theme %q not registered", name)
	}
	if variant == "" {
		variant = VariantDefault
	}
	if _, ok := manifest.Variants[variant]; !ok {
		return nil, fmt.Errorf("export: theme %q has no variant %q", name, variant)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Variants lists the variants of the built-in theme.
func Variants() []string {
	out := make([]string, 0, len(DefaultManifest().Variants))
	for name := range DefaultManifest().Variants {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Tokens merges the manifest tokens with the selected variant's overrides.
func Tokens(selection *theme.Selection) map[string]string {
	out := map[string]string{}
	if selection == nil || selection.Manifest == nil {
		return out
	}
	for key, value := range selection.Manifest.Tokens {
		out[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			out[key] = value
		}
	}
	return out
}

// Stylesheet renders the CSS rules for a resolved selection.
func Stylesheet(selection *theme.Selection) string {
	tokens := Tokens(selection)
	rules := []struct {
		selector string
		decls    [][2]string
	}{
		{"body", [][2]string{{"font-family", tokens[TokenFontFamily]}, {"color", tokens[TokenTextColor]}}},
		{"table", [][2]string{{"border-collapse", "collapse"}, {"width", "100%"}}},
		{"th, td", [][2]string{{"border", "1px solid " + tokens[TokenBorderColor]}, {"padding", tokens[TokenCellPadding]}}},
		{"th", [][2]string{{"background-color", tokens[TokenHeaderBackground]}}},
		{"h1", [][2]string{{"font-size", tokens[TokenH1Size]}}},
		{"h2", [][2]string{{"font-size", tokens[TokenH2Size]}}},
		{"h3", [][2]string{{"font-size", tokens[TokenH3Size]}}},
		{"pre", [][2]string{{"background-color", tokens[TokenCodeBackground]}, {"padding", "10px"}, {"border-radius", "5px"}}},
	}

	var b strings.Builder
	for _, rule := range rules {
		var decls []string
		for _, decl := range rule.decls {
			if strings.TrimSpace(decl[1]) == "" || strings.HasSuffix(decl[1], " ") {
				continue
			}
			decls = append(decls, decl[0]+": "+decl[1]+";")
		}
		if len(decls) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s { %s }\n", rule.selector, strings.Join(decls, " "))
	}
	return strings.TrimRight(b.String(), "\n")
}
