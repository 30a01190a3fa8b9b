package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/storage"
	"github.com/goliatone/go-formdoc/pkg/templates"
	"github.com/goliatone/go-formdoc/pkg/validation"
)

func newSession(t *testing.T, id string, opts ...Option) (*Session, *storage.Persistence) {
	t.Helper()
	tpl := templates.MustBuiltin().MustGet(id)
	p := storage.NewPersistence(storage.NewMemoryStore())
	opts = append([]Option{WithPersistence(p), WithDelay(time.Hour)}, opts...)
	s, err := New(tpl, opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s, p
}

func TestSession_SetRegeneratesOnFlush(t *testing.T) {
	s, p := newSession(t, "weekly-report")

	if err := s.Set("name", "张三"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("date", "2024-01-01"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if s.Markdown() != "" {
		t.Fatalf("documents must not regenerate before the debounce fires")
	}
	if !s.Flush() {
		t.Fatalf("expected a pending regeneration")
	}

	if !strings.HasPrefix(s.Markdown(), "# 张三 周报 - 2024-01-01\n") {
		t.Fatalf("unexpected markdown:\n%s", s.Markdown())
	}
	if !strings.HasPrefix(s.HTML(), "<h1>张三 周报 - 2024-01-01</h1>") {
		t.Fatalf("unexpected html:\n%s", s.HTML())
	}
	want := map[string]any{"name": "张三", "date": "2024-01-01"}
	if diff := cmp.Diff(want, p.Load("weekly-report", model.ModeRich)); diff != "" {
		t.Fatalf("persisted values mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_TimerRegenerates(t *testing.T) {
	updates := make(chan Snapshot, 1)
	s, _ := newSession(t, "weekly-report",
		WithDelay(5*time.Millisecond),
		WithOnUpdate(func(snap Snapshot) { updates <- snap }),
	)

	s.Replace(map[string]any{"name": "李四"})

	select {
	case snap := <-updates:
		if !strings.HasPrefix(snap.Markdown, "# 李四 周报\n") {
			t.Fatalf("unexpected markdown:\n%s", snap.Markdown)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("regeneration did not run")
	}
}

func TestSession_ContentFollowsMode(t *testing.T) {
	s, _ := newSession(t, "weekly-report")
	s.Replace(map[string]any{"name": "a"})
	s.Flush()

	if got := s.Content(); got != s.HTML() {
		t.Fatalf("rich mode should copy html, got %q", got)
	}
	if err := s.SetMode(model.ModeMarkdown); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if got := s.Content(); got != s.Markdown() || !strings.HasPrefix(got, "# ") {
		t.Fatalf("markdown mode should copy markdown, got %q", got)
	}
}

func TestSession_ModesPersistSeparately(t *testing.T) {
	s, p := newSession(t, "weekly-report")

	if err := s.Set("name", "rich"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetMode(model.ModeMarkdown); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if got := s.Values()["name"]; got != nil {
		t.Fatalf("markdown mode should start empty, got %v", got)
	}
	if err := s.Set("name", "md"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetMode(model.ModeRich); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if got := s.Values()["name"]; got != "rich" {
		t.Fatalf("expected rich values restored, got %v", got)
	}
	if got := p.Load("weekly-report", model.ModeMarkdown)["name"]; got != "md" {
		t.Fatalf("expected markdown values saved, got %v", got)
	}
}

func TestSession_LoadRestoresSaved(t *testing.T) {
	s, p := newSession(t, "release-plan")
	p.Save("release-plan", model.ModeRich, map[string]any{"projectName": "Foo"})

	if !s.Load() {
		t.Fatalf("expected saved values")
	}
	if !strings.HasPrefix(s.Markdown(), "# Foo 发布计划\n") {
		t.Fatalf("load should regenerate, got:\n%s", s.Markdown())
	}
}

func TestSession_ResetClearsEverything(t *testing.T) {
	s, p := newSession(t, "weekly-report")
	p.Save("weekly-report", model.ModeMarkdown, map[string]any{"name": "old"})
	s.Replace(map[string]any{"name": "x"})
	s.Flush()

	s.Reset()

	if len(s.Values()) != 0 || s.Markdown() != "" || s.HTML() != "" {
		t.Fatalf("expected cleared session, got %+v", s.Snapshot())
	}
	if s.Flush() {
		t.Fatalf("reset should cancel pending work")
	}
	for _, mode := range model.PreviewModes() {
		if got := p.Load("weekly-report", mode); got != nil {
			t.Fatalf("mode %s still persisted: %v", mode, got)
		}
	}
}

func TestSession_PreviewValidates(t *testing.T) {
	s, _ := newSession(t, "weekly-report")
	s.Replace(map[string]any{"name": "a"})

	_, err := s.Preview()
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if diff := cmp.Diff([]string{"date"}, errs.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	if err := s.Set("date", "2024-01-01"); err != nil {
		t.Fatalf("set: %v", err)
	}
	snap, err := s.Preview()
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.HasPrefix(snap.Markdown, "# a 周报 - 2024-01-01\n") {
		t.Fatalf("preview should use latest values, got:\n%s", snap.Markdown)
	}
	if s.Flush() {
		t.Fatalf("preview should fold in the pending regeneration")
	}
}

func TestSession_RolesFilterOutput(t *testing.T) {
	s, _ := newSession(t, "test-report", WithRoles(model.RoleFrontend))
	s.Replace(map[string]any{
		"projectName": "Foo",
		"serverConfigs": map[string]any{
			"apolloConfig": "apollo",
		},
	})
	s.Flush()

	if strings.Contains(s.Markdown(), "apollo") {
		t.Fatalf("frontend viewer should not see server configs:\n%s", s.Markdown())
	}
}

func TestSession_RejectsBadInput(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil template")
	}
	s, _ := newSession(t, "weekly-report")
	if err := s.SetMode("print"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if err := s.Set("", "x"); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
