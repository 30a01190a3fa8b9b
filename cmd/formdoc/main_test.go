package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-formdoc/pkg/export"
	"github.com/goliatone/go-formdoc/pkg/renderers/tui"
)

var fixedTime = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

type harness struct {
	app     *app
	dir     string
	config  string
	storage string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	storageDir := filepath.Join(dir, "values")
	cfg := "storage:\n  driver: file\n  dir: " + storageDir + "\n" +
		"session:\n  debounce: 10ms\n" +
		"export:\n  dir: " + filepath.Join(dir, "out") + "\n" +
		"log:\n  level: error\n"
	path := filepath.Join(dir, "formdoc.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	a := newApp()
	a.now = func() time.Time { return fixedTime }
	a.interactive = func() bool { return false }
	return &harness{app: a, dir: dir, config: path, storage: storageDir}
}

func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(h.app)
	root.SetArgs(append([]string{"--config=" + h.config}, args...))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (h *harness) writeValues(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write values: %v", err)
	}
	return path
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type scriptedDriver struct {
	inputs []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", tui.ErrAborted
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return 0, nil
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", nil
}

func (d *scriptedDriver) Info(context.Context, string) error {
	return nil
}

func TestTemplatesCommand(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.run(t, "templates")
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	for _, id := range []string{"test-report", "release-plan", "weekly-report"} {
		if !strings.Contains(out, id) {
			t.Fatalf("template %s missing from %q", id, out)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	h := newHarness(t)
	values := h.writeValues(t, "weekly.yaml", "name: 张三\ndate: \"2024-01-01\"\n")

	out, _, err := h.run(t, "render", "weekly-report", "--values", values)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "# 张三 周报 - 2024-01-01") {
		t.Fatalf("unexpected markdown %q", out)
	}

	target := filepath.Join(h.dir, "weekly.html")
	if _, _, err := h.run(t, "render", "weekly-report", "--values", values, "--format", "html", "--out", target); err != nil {
		t.Fatalf("render html: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<h1>张三 周报 - 2024-01-01</h1>") {
		t.Fatalf("unexpected html %q", data)
	}
}

func TestRenderCommand_Validate(t *testing.T) {
	h := newHarness(t)
	values := h.writeValues(t, "weekly.json", `{"name":"张三"}`)

	_, stderr, err := h.run(t, "render", "weekly-report", "--values", values, "--validate")
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(stderr, "请输入日期") {
		t.Fatalf("missing field message in %q", stderr)
	}

	if _, _, err := h.run(t, "render", "weekly-report", "--format", "pdf"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, _, err := h.run(t, "render", "weekly-report", "--roles", "qa"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestFillCommand_RequiresTerminal(t *testing.T) {
	h := newHarness(t)
	if _, _, err := h.run(t, "fill", "weekly-report"); !errors.Is(err, errNotInteractive) {
		t.Fatalf("expected errNotInteractive, got %v", err)
	}
}

func TestFillCommand_SavesAnswers(t *testing.T) {
	h := newHarness(t)
	h.app.interactive = func() bool { return true }
	h.app.prompts = &scriptedDriver{inputs: []string{"张三", "2024-01-01"}}

	out, _, err := h.run(t, "fill", "weekly-report", "--mode", "markdown")
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !strings.Contains(out, "张三 周报") || !strings.Contains(out, "weekly-report_markdown") {
		t.Fatalf("unexpected fill output %q", out)
	}

	data, err := os.ReadFile(filepath.Join(h.storage, "weekly-report_markdown.json"))
	if err != nil {
		t.Fatalf("answers not persisted: %v", err)
	}
	var saved map[string]any
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("decode saved values: %v", err)
	}
	if saved["name"] != "张三" || saved["date"] != "2024-01-01" {
		t.Fatalf("unexpected saved values %v", saved)
	}

	out, _, err = h.run(t, "render", "weekly-report", "--mode", "markdown")
	if err != nil {
		t.Fatalf("render saved: %v", err)
	}
	if !strings.HasPrefix(out, "# 张三 周报 - 2024-01-01") {
		t.Fatalf("render must use saved values, got %q", out)
	}

	if _, _, err := h.run(t, "reset", "weekly-report"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := os.Stat(filepath.Join(h.storage, "weekly-report_markdown.json")); !os.IsNotExist(err) {
		t.Fatalf("reset must delete saved values, stat err %v", err)
	}
}

func TestFillCommand_AbortKeepsAnswers(t *testing.T) {
	h := newHarness(t)
	h.app.interactive = func() bool { return true }
	h.app.prompts = &scriptedDriver{inputs: []string{"张三"}}

	_, _, err := h.run(t, "fill", "weekly-report")
	if err == nil || !strings.Contains(err.Error(), "aborted") {
		t.Fatalf("expected abort error, got %v", err)
	}
	data, err := os.ReadFile(filepath.Join(h.storage, "weekly-report_rich.json"))
	if err != nil {
		t.Fatalf("partial answers not flushed: %v", err)
	}
	if !strings.Contains(string(data), "张三") {
		t.Fatalf("unexpected saved values %s", data)
	}
}

func TestExportCommand(t *testing.T) {
	h := newHarness(t)
	values := h.writeValues(t, "weekly.json", `{"name":"张三","date":"2024-01-01"}`)

	out, _, err := h.run(t, "export", "weekly-report", "--values", values, "--format", "doc")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	path := filepath.Join(h.dir, "out", "周报-2024-03-05.doc")
	if !strings.Contains(out, path) {
		t.Fatalf("export path not reported: %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse doc: %v", err)
	}
	if doc.Find("title").Text() != "周报-2024-03-05" || doc.Find("h1").Text() != "张三 周报 - 2024-01-01" {
		t.Fatalf("unexpected doc %s", data)
	}

	dir := filepath.Join(h.dir, "md")
	if _, _, err := h.run(t, "export", "weekly-report", "--values", values, "--dir", dir); err != nil {
		t.Fatalf("export md: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "周报-2024-03-05.md")); err != nil {
		t.Fatalf("markdown export missing: %v", err)
	}

	empty := h.writeValues(t, "empty.json", `{}`)
	if _, _, err := h.run(t, "export", "weekly-report", "--values", empty); err == nil {
		t.Fatalf("export must refuse missing required fields")
	}
}

func TestCopyCommand(t *testing.T) {
	h := newHarness(t)
	cb := &fakeClipboard{}
	h.app.clipboard = cb
	values := h.writeValues(t, "weekly.json", `{"name":"张三","date":"2024-01-01"}`)

	if _, _, err := h.run(t, "copy", "weekly-report", "--values", values); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if !strings.HasPrefix(cb.text, "<h1>张三 周报 - 2024-01-01</h1>") {
		t.Fatalf("rich mode must copy html, got %q", cb.text)
	}

	if _, _, err := h.run(t, "copy", "weekly-report", "--values", values, "--mode", "markdown"); err != nil {
		t.Fatalf("copy markdown: %v", err)
	}
	if !strings.HasPrefix(cb.text, "# 张三 周报") {
		t.Fatalf("markdown mode must copy markdown, got %q", cb.text)
	}

	cb.err = export.ErrClipboardUnsupported
	if _, _, err := h.run(t, "copy", "weekly-report", "--values", values); !errors.Is(err, export.ErrClipboardUnsupported) {
		t.Fatalf("expected clipboard error, got %v", err)
	}
}

func TestPublishCommand(t *testing.T) {
	h := newHarness(t)
	values := h.writeValues(t, "weekly.json", `{"name":"张三","date":"2024-01-01"}`)

	_, stderr, err := h.run(t, "publish", "weekly-report", "--values", values, "--platform", "notion", "--title", "周报")
	if err == nil || !strings.Contains(stderr, "请输入Notion数据库ID") {
		t.Fatalf("expected missing option failure, got %v / %q", err, stderr)
	}

	out, _, err := h.run(t, "publish", "weekly-report", "--values", values, "--platform", "notion", "--title", "周报", "--option", "notionDatabase=abc")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !strings.Contains(out, "Notion") {
		t.Fatalf("unexpected publish output %q", out)
	}

	if _, _, err := h.run(t, "publish", "weekly-report", "--values", values, "--platform", "confluence", "--title", "x"); !errors.Is(err, export.ErrPlatformNotFound) {
		t.Fatalf("expected ErrPlatformNotFound, got %v", err)
	}
	if _, _, err := h.run(t, "publish", "weekly-report", "--platform", "wiki", "--option", "broken"); err == nil {
		t.Fatalf("expected error for malformed option")
	}
}

func TestSchemaCommand(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.run(t, "schema", "release-plan")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if schema["title"] != "发布计划" {
		t.Fatalf("unexpected schema title %v", schema["title"])
	}
	if _, _, err := h.run(t, "schema", "missing"); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestInvalidConfig(t *testing.T) {
	h := newHarness(t)
	bad := filepath.Join(h.dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("output:\n  html_policy: trust\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	h.config = bad
	if _, _, err := h.run(t, "templates"); err == nil || !strings.Contains(err.Error(), "config:") {
		t.Fatalf("expected config error, got %v", err)
	}
	h.config = filepath.Join(h.dir, "formdoc.yaml")
	if _, _, err := h.run(t, "--log-level", "loud", "templates"); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}
