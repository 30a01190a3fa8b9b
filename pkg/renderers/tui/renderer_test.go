package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputConfigs []InputConfig
	selects      []SelectConfig
	confirms     []ConfirmConfig
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirms = append(s.confirms, cfg)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func sampleForm() model.Form {
	return model.Form{
		TemplateID: "sample",
		Fields: []model.Field{
			{Name: "title", Label: "标题", Type: model.FieldText, Required: true},
			{Name: "status", Label: "状态", Type: model.FieldSelect, Options: []model.Option{
				{Label: "草稿", Value: "draft"},
				{Label: "已发布", Value: "published"},
			}},
			{Name: "notes", Label: "备注", Type: model.FieldTextarea},
			{Name: "done", Label: "完成", Type: model.FieldCheckbox},
		},
	}
}

func decode(t *testing.T, out []byte) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	return got
}

func TestRender_LeafPrompts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"hello"},
		selectIdx: []int{2},
		textAreas: []string{"line1\nline2"},
		confirm:   []bool{true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), sampleForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := map[string]any{
		"title":  "hello",
		"status": "published",
		"notes":  "line1\nline2",
		"done":   true,
	}
	if diff := cmp.Diff(want, decode(t, out)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := driver.selects[0].Options; !cmp.Equal(got, []string{skipOption, "草稿", "已发布"}) {
		t.Fatalf("unexpected select options %v", got)
	}
}

func TestRender_RequiredReprompts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"  ", "ok"},
		selectIdx: []int{0},
		textAreas: []string{""},
		confirm:   []bool{false},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), sampleForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if driver.inputPos != 2 {
		t.Fatalf("expected two input prompts, got %d", driver.inputPos)
	}
	if !contains(driver.infoMessages, "! 请输入标题") {
		t.Fatalf("expected required message, got %v", driver.infoMessages)
	}
	if got := decode(t, out)["title"]; got != "ok" {
		t.Fatalf("expected title ok, got %v", got)
	}
}

func TestRender_PrefillDefaultsAndErrors(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"kept"},
		selectIdx: []int{1},
		textAreas: []string{""},
		confirm:   []bool{false},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	_, err = r.Render(context.Background(), sampleForm(), render.RenderOptions{
		Values: map[string]any{"title": "draft title", "status": "draft"},
		Errors: map[string][]string{"title": {"标题太短"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := driver.inputConfigs[0].Default; got != "draft title" {
		t.Fatalf("expected prefilled default, got %q", got)
	}
	if got := driver.selects[0].DefaultIndex; got != 1 {
		t.Fatalf("expected draft preselected, got %d", got)
	}
	if !contains(driver.infoMessages, "! 标题太短") {
		t.Fatalf("expected prefilled error, got %v", driver.infoMessages)
	}
}

func TestRender_GroupsAndTables(t *testing.T) {
	form := model.Form{
		Fields: []model.Field{
			{Name: "projects", Label: "项目信息", Type: model.FieldGroup, Children: []model.Field{
				{Name: "frontendProjects", Label: "前端项目", Type: model.FieldTable, Required: true, Columns: []model.Field{
					{Name: "repoUrl", Label: "项目名", Type: model.FieldText},
				}},
			}},
		},
	}
	driver := &stubDriver{
		inputs:  []string{"fe", "admin"},
		confirm: []bool{true, true, false},
	}
	var changes []string
	r, err := New(WithPromptDriver(driver), WithChangeHook(func(path string, _ any) {
		changes = append(changes, path)
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := map[string]any{
		"projects": map[string]any{
			"frontendProjects": []any{
				map[string]any{"repoUrl": "fe"},
				map[string]any{"repoUrl": "admin"},
			},
		},
	}
	if diff := cmp.Diff(want, decode(t, out)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{
		"projects.frontendProjects[0].repoUrl",
		"projects.frontendProjects[1].repoUrl",
	}, changes); diff != "" {
		t.Fatalf("change hook mismatch (-want +got):\n%s", diff)
	}
	if !driver.confirms[0].Default {
		t.Fatalf("expected first row offer to default to yes for required tables")
	}
	if got := driver.confirms[1].Message; got != "继续添加前端项目？" {
		t.Fatalf("unexpected follow-up message %q", got)
	}
}

func TestRender_ExistingRowsRevisited(t *testing.T) {
	form := model.Form{
		Fields: []model.Field{
			{Name: "others", Label: "其他", Type: model.FieldTable, Columns: []model.Field{
				{Name: "content", Label: "内容", Type: model.FieldText},
			}},
		},
	}
	driver := &stubDriver{
		inputs:  []string{"edited"},
		confirm: []bool{false},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), form, render.RenderOptions{
		Values: map[string]any{"others": []any{map[string]any{"content": "old"}}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := driver.inputConfigs[0].Default; got != "old" {
		t.Fatalf("expected existing cell as default, got %q", got)
	}
	rows := decode(t, out)["others"].([]any)
	if len(rows) != 1 || rows[0].(map[string]any)["content"] != "edited" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestRender_RoleFilterSkipsHiddenFields(t *testing.T) {
	form := model.Form{
		Fields: []model.Field{
			{Name: "shared", Label: "公共", Type: model.FieldText},
			{Name: "apollo", Label: "Apollo配置", Type: model.FieldTextarea, Roles: []model.Role{model.RoleBackend}},
		},
	}
	driver := &stubDriver{inputs: []string{"x"}}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), form, render.RenderOptions{Roles: []model.Role{model.RoleFrontend}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if driver.textPos != 0 {
		t.Fatalf("hidden textarea should not be prompted")
	}
	if _, ok := decode(t, out)["apollo"]; ok {
		t.Fatalf("hidden field should not be collected")
	}
}

func TestRender_PrettyOutput(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"hello"},
		selectIdx: []int{1},
		textAreas: []string{""},
		confirm:   []bool{true},
	}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if r.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}

	out, err := r.Render(context.Background(), sampleForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "标题: hello\n状态: draft\n备注: \n完成: 是\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("pretty output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_DriverErrorStops(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	_, err = r.Render(context.Background(), sampleForm(), render.RenderOptions{})
	if err == nil || !strings.Contains(err.Error(), "no input scripted") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestSurveyDriver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := NewSurveyDriver(nil)
	if _, err := driver.Input(ctx, InputConfig{Message: "项目名称"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled from Input, got %v", err)
	}
	if _, err := driver.Select(ctx, SelectConfig{Message: "级别", Options: []string{"高"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled from Select, got %v", err)
	}
	if err := driver.Info(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled from Info, got %v", err)
	}
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
