package testsupport

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/model"
)

func TestLoadValuesYAML(t *testing.T) {
	got := MustLoadValues(t, filepath.Join("testdata", "values.yaml"))
	want := map[string]any{
		"projectName": "Foo",
		"projects": map[string]any{
			"frontendProjects": []any{map[string]any{"repoUrl": "fe", "gitUrl": "g"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadValuesErrors(t *testing.T) {
	if _, err := LoadValues(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadValues(filepath.Join("testdata", "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestMustLoadForm(t *testing.T) {
	form := MustLoadForm(t, filepath.Join("testdata", "form.json"))
	if form.TemplateID != "sample" || len(form.Fields) != 2 {
		t.Fatalf("unexpected form %+v", form)
	}
	if form.Fields[1].Type != model.FieldTable || form.Fields[1].Columns[0].Name != "cell" {
		t.Fatalf("table columns not decoded: %+v", form.Fields[1])
	}
}

func TestAssertGolden_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.golden")
	t.Setenv("UPDATE_GOLDENS", "1")
	AssertGolden(t, path, "fresh\n")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "fresh\n" {
		t.Fatalf("golden not written: %q", data)
	}

	t.Setenv("UPDATE_GOLDENS", "")
	AssertGolden(t, path, "fresh\n")
}

func TestCaptureTemplateOutput(t *testing.T) {
	out, written := CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		_, err := io.WriteString(w, "hi")
		return "hi", err
	})
	if out != "hi" || written != "hi" {
		t.Fatalf("unexpected capture %q / %q", out, written)
	}
}
