package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/render"
)

func TestHiddenFields_MergeAndSort(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"_mode":      "rich",
		"":           "ignored",
	}

	got := render.HiddenFields(base,
		render.Hidden(render.ModeField, "markdown"),
		render.Hidden(" "+render.RolesField+" ", "pm,frontend"),
		render.Hidden("version", 4),
		render.Hidden("  ", "skip"),
	)

	want := []render.HiddenField{
		{Name: "_mode", Value: "markdown"},
		{Name: "_roles", Value: "pm,frontend"},
		{Name: "existing", Value: "keep"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestHiddenFields_Empty(t *testing.T) {
	if got := render.HiddenFields(nil, render.Hidden(" ", "x")); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
