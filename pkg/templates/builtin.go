package templates

import (
	"fmt"
	"io/fs"
)

// Built-in template ids.
const (
	TestReportID   = "test-report"
	ReleasePlanID  = "release-plan"
	WeeklyReportID = "weekly-report"
)

type generatorPair struct {
	markdown GenerateFunc
	html     GenerateFunc
}

var builtinGenerators = map[string]generatorPair{
	TestReportID:   {markdown: testReportMarkdown, html: testReportHTML},
	ReleasePlanID:  {markdown: releasePlanMarkdown, html: releasePlanHTML},
	WeeklyReportID: {markdown: weeklyReportMarkdown, html: weeklyReportHTML},
}

var builtinOrder = []string{TestReportID, ReleasePlanID, WeeklyReportID}

// Builtin returns a registry holding the test report, release plan, and
// weekly report templates.
func Builtin() (*Registry, error) {
	return FromFS(SchemasFS())
}

// MustBuiltin panics if the embedded schemas fail to load.
func MustBuiltin() *Registry {
	reg, err := Builtin()
	if err != nil {
		panic(err)
	}
	return reg
}

// FromFS loads schema files from fsys and binds them to the built-in
// generators by id. Schemas without a generator are rejected. This lets
// callers override labels, placeholders, or roles without touching code.
func FromFS(fsys fs.FS) (*Registry, error) {
	defs, err := LoadDefinitions(fsys)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Definition, len(defs))
	for _, def := range defs {
		if _, ok := builtinGenerators[def.ID]; !ok {
			return nil, fmt.Errorf("templates: no generator for template %q", def.ID)
		}
		byID[def.ID] = def
	}

	reg := NewRegistry()
	for _, id := range builtinOrder {
		def, ok := byID[id]
		if !ok {
			continue
		}
		gen := builtinGenerators[id]
		if err := reg.Register(New(def, gen.markdown, gen.html)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
