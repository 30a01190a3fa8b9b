package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdoc/internal/labels"
	"github.com/goliatone/go-formdoc/pkg/model"
)

//go:embed schemas/*.yaml
var builtinSchemas embed.FS

// SchemasFS exposes the embedded field schemas of the built-in templates.
func SchemasFS() fs.FS {
	sub, err := fs.Sub(builtinSchemas, "schemas")
	if err != nil {
		return builtinSchemas
	}
	return sub
}

// Definition is the declarative half of a template as read from a schema
// file: identity plus the field tree.
type Definition struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Fields      []model.Field `json:"fields" yaml:"fields"`
}

// LoadDefinitions walks fsys and parses every YAML/JSON schema file. Field
// IDs default to their names and missing labels are derived from names.
// Definitions are returned sorted by file path.
func LoadDefinitions(fsys fs.FS) ([]Definition, error) {
	if fsys == nil {
		return nil, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("templates: walk schemas: %w", err)
	}
	sort.Strings(paths)

	defs := make([]Definition, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("templates: read %s: %w", path, err)
		}
		def, err := parseDefinition(data, path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[def.ID]; dup {
			return nil, fmt.Errorf("templates: duplicate template id %q (files %s, %s)", def.ID, prev, path)
		}
		seen[def.ID] = path
		defs = append(defs, def)
	}
	return defs, nil
}

func parseDefinition(data []byte, path string) (Definition, error) {
	var def Definition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return Definition{}, fmt.Errorf("templates: parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return Definition{}, fmt.Errorf("templates: parse %s: %w", path, err)
		}
	}

	def.ID = strings.TrimSpace(def.ID)
	if def.ID == "" {
		return Definition{}, fmt.Errorf("templates: file %s defines an empty template id", path)
	}
	if strings.TrimSpace(def.Name) == "" {
		def.Name = labels.Humanize(def.ID)
	}
	def.Fields = fillDefaults(def.Fields)

	if err := model.ValidateFields(def.Fields); err != nil {
		return Definition{}, fmt.Errorf("templates: %s: %w", path, err)
	}
	return def, nil
}

func fillDefaults(fields []model.Field) []model.Field {
	for i := range fields {
		field := &fields[i]
		if field.ID == "" {
			field.ID = field.Name
		}
		if field.Label == "" {
			field.Label = labels.Humanize(field.Name)
		}
		field.Children = fillDefaults(field.Children)
		field.Columns = fillDefaults(field.Columns)
	}
	return fields
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
