package labels

import "testing"

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"frontendProjects": "Frontend Projects",
		"release-plan":     "Release Plan",
		"smoke_doc2":       "Smoke Doc 2",
		"wikiSpace":        "Wiki Space",
		"项目名称":             "项目名称",
	}
	for in, want := range cases {
		if got := Humanize(in); got != want {
			t.Fatalf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
