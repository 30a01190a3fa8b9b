package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdoc/internal/config"
	"github.com/goliatone/go-formdoc/internal/logging"
	"github.com/goliatone/go-formdoc/pkg/export"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/preview"
	"github.com/goliatone/go-formdoc/pkg/renderers/tui"
	"github.com/goliatone/go-formdoc/pkg/storage"
	"github.com/goliatone/go-formdoc/pkg/templates"
	"github.com/goliatone/go-formdoc/pkg/validation"
)

// app carries the state shared by every command. Fields below the blank line
// are seams tests replace.
type app struct {
	configPath string
	logLevel   string

	cfg         *config.Config
	logger      *slog.Logger
	orch        *orchestrator.Orchestrator
	persistence *storage.Persistence
	exporter    *export.Exporter
	platforms   *export.Platforms

	clipboard   export.Clipboard
	prompts     tui.PromptDriver
	interactive func() bool
	now         func() time.Time
}

func newApp() *app {
	return &app{
		clipboard:   export.SystemClipboard{},
		interactive: stdinIsTerminal,
		now:         time.Now,
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// setup loads configuration and builds the shared collaborators. It runs
// before every command.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}

	orchOpts := []orchestrator.Option{orchestrator.WithPolicy(cfg.Policy())}
	if cfg.Output.Presets != "" {
		data, err := os.ReadFile(cfg.Output.Presets)
		if err != nil {
			return fmt.Errorf("read presets: %w", err)
		}
		transformer, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return err
		}
		orchOpts = append(orchOpts, orchestrator.WithSchemaTransformer(transformer))
	}

	exporter, err := export.NewExporter(export.WithVariant(cfg.Export.Variant), export.WithClock(a.now))
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.orch = orchestrator.New(orchOpts...)
	a.persistence = storage.NewPersistence(store, storage.WithLogger(logger))
	a.exporter = exporter
	a.platforms = export.DefaultPlatforms(logger)
	logger.Debug("configured", "storage", cfg.Storage.Driver, "policy", cfg.Output.HTMLPolicy, "variant", cfg.Export.Variant)
	return nil
}

func openStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "file":
		return storage.NewFileStore(cfg.Dir)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// docFlags are the flags shared by commands that generate documents.
type docFlags struct {
	mode   string
	roles  string
	values string
}

func (f *docFlags) register(cmd *cobra.Command, withValues bool) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "Preview mode whose saved values are used (rich or markdown)")
	cmd.Flags().StringVar(&f.roles, "roles", "", "Comma separated viewer roles (pm, frontend, backend)")
	if withValues {
		cmd.Flags().StringVar(&f.values, "values", "", "JSON or YAML file with field values (defaults to saved values)")
	}
}

type docRequest struct {
	tpl   *templates.Template
	mode  model.PreviewMode
	roles []model.Role
	raw   map[string]any
}

// resolve turns the flags into a template, mode, roles and the values to
// generate from.
func (a *app) resolve(id string, f docFlags) (docRequest, error) {
	tpl, err := a.orch.Template(id)
	if err != nil {
		return docRequest{}, err
	}
	modeRaw := f.mode
	if modeRaw == "" {
		modeRaw = a.cfg.Output.Mode
	}
	mode, err := model.ParsePreviewMode(modeRaw)
	if err != nil {
		return docRequest{}, err
	}
	roles, err := model.ParseRoles(f.roles)
	if err != nil {
		return docRequest{}, err
	}
	if len(roles) == 0 {
		roles = a.cfg.Roles()
	}

	req := docRequest{tpl: tpl, mode: mode, roles: roles}
	if f.values != "" {
		req.raw, err = readValuesFile(f.values)
		if err != nil {
			return docRequest{}, err
		}
		return req, nil
	}
	req.raw = a.persistence.Load(tpl.ID, mode)
	if req.raw == nil {
		req.raw = tpl.Defaults()
	}
	return req, nil
}

func (a *app) documents(ctx context.Context, req docRequest, validate bool) (orchestrator.Documents, error) {
	return a.orch.Documents(ctx, orchestrator.DocumentRequest{
		TemplateID: req.tpl.ID,
		Values:     req.raw,
		Roles:      req.roles,
		Validate:   validate,
	})
}

// readValuesFile decodes a JSON or YAML object, chosen by extension.
func readValuesFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	out := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	return out, nil
}

// activeContent is HTML in rich mode and Markdown otherwise.
func activeContent(mode model.PreviewMode, docs orchestrator.Documents) string {
	if mode == model.ModeRich {
		return docs.HTML
	}
	return docs.Markdown
}

func printValidation(w io.Writer, st styler, errs validation.Errors) {
	for _, fe := range errs {
		label := fe.Label
		if label == "" {
			label = fe.Path
		}
		fmt.Fprintf(w, "%s %s: %s\n", st.failure("✗"), label, fe.Message)
	}
}

// terminalMarkdown renders Markdown with glamour, styled for terminals and
// plain otherwise.
func terminalMarkdown(w io.Writer, md string) (string, error) {
	style := preview.StyleNoTTY
	if isTerminal(w) {
		style = preview.StyleAuto
	}
	return preview.Terminal(md, style, preview.DefaultWrap)
}
