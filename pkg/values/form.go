package values

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/schema"
)

// FromForm builds a value bag from an HTML form post whose control names are
// value paths ("documents.prdDocument", "projects.frontendProjects[0].gitUrl").
// Only paths known to the schema are accepted. Checkbox controls become
// booleans and blank table rows are dropped so the renderer's spare rows do
// not leak into the document.
func FromForm(fields []model.Field, form url.Values) (Values, error) {
	out := Values{}

	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, ok := schema.Lookup(fields, key)
		if !ok || !field.Type.IsLeaf() {
			continue
		}
		raw := form[key]
		var value any = ""
		if len(raw) > 0 {
			value = raw[len(raw)-1]
		}
		if field.Type == model.FieldCheckbox {
			value = checkboxValue(raw)
		}
		if err := out.Set(key, value); err != nil {
			return nil, fmt.Errorf("values: form key %q: %w", key, err)
		}
	}

	_ = schema.Walk(fields, "", func(entry schema.Entry) error {
		if entry.Field.Type == model.FieldTable && !entry.Column {
			compactRows(out, entry.Path)
			return schema.SkipChildren
		}
		return nil
	})
	return out, nil
}

func checkboxValue(raw []string) bool {
	for _, v := range raw {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on", "true", "1", "yes":
			return true
		}
	}
	return false
}

func compactRows(bag Values, path string) {
	value, ok := bag.Get(path)
	if !ok {
		return
	}
	rows, ok := value.([]any)
	if !ok {
		return
	}
	kept := make([]any, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]any); ok && Row(m).Empty() {
			continue
		}
		kept = append(kept, row)
	}
	_ = bag.Set(path, kept)
}
