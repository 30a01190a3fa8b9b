// Package testsupport holds fixture and golden-file helpers shared by the
// package tests. Goldens are rewritten when UPDATE_GOLDENS is set.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdoc/pkg/model"
)

// MustLoadValues reads a value-bag fixture, YAML or JSON by extension.
func MustLoadValues(t *testing.T, path string) map[string]any {
	t.Helper()
	bag, err := LoadValues(path)
	if err != nil {
		t.Fatalf("load values: %v", err)
	}
	return bag
}

// LoadValues is MustLoadValues for setup code without a *testing.T.
func LoadValues(path string) (map[string]any, error) {
	data, err := readFixture("values", path)
	if err != nil {
		return nil, err
	}
	bag := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &bag)
	default:
		err = json.Unmarshal(data, &bag)
	}
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode values %s: %w", path, err)
	}
	return bag, nil
}

// MustLoadForm decodes a JSON form fixture.
func MustLoadForm(t *testing.T, path string) model.Form {
	t.Helper()
	data, err := readFixture("form", path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	var form model.Form
	if err := json.Unmarshal(data, &form); err != nil {
		t.Fatalf("load form: decode %s: %v", path, err)
	}
	return form
}

func readFixture(kind, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("testsupport: %s path is required", kind)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read %s: %w", kind, err)
	}
	return data, nil
}

// AssertGolden compares got with the golden file at path. With
// UPDATE_GOLDENS set the file is rewritten instead.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}
	want, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		t.Fatalf("golden %s missing, rerun with UPDATE_GOLDENS=1", path)
	}
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render with a buffer and returns both the
// returned string and what was written to the buffer.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
