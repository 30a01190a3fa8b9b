package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/validation"
)

// ErrPlatformNotFound is returned for an unknown platform id.
var ErrPlatformNotFound = errors.New("export: platform not found")

// OptionTitle is the document title every platform requires.
const OptionTitle = "title"

// PlatformOption describes an input a platform asks for before exporting.
type PlatformOption struct {
	Name        string
	Label       string
	Placeholder string
	Required    bool
}

// Message is the prompt shown when a required option is missing.
func (o PlatformOption) Message() string {
	if o.Placeholder != "" {
		return o.Placeholder
	}
	return validation.RequiredMessage(o.Label)
}

// Options carries the document title and platform-specific values.
type Options struct {
	Title  string
	Values map[string]string
}

// Platform is an external destination for generated documents.
type Platform interface {
	ID() string
	Name() string
	Description() string
	RequiredOptions() []PlatformOption
	Export(ctx context.Context, content string, opts Options) (bool, error)
}

// stubPlatform accepts every export and only logs it. Real integrations
// replace these through Platforms.Register.
type stubPlatform struct {
	id          string
	name        string
	description string
	options     []PlatformOption
	logger      *slog.Logger
}

func (p *stubPlatform) ID() string                        { return p.id }
func (p *stubPlatform) Name() string                      { return p.name }
func (p *stubPlatform) Description() string               { return p.description }
func (p *stubPlatform) RequiredOptions() []PlatformOption { return append([]PlatformOption(nil), p.options...) }

func (p *stubPlatform) Export(ctx context.Context, content string, opts Options) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	logger := p.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("export to platform", "platform", p.id, "title", opts.Title, "bytes", len(content))
	return true, nil
}

// Platforms is an ordered set of platforms.
type Platforms struct {
	order []string
	byID  map[string]Platform
}

// DefaultPlatforms returns the built-in stubs: wiki, feishu, yuque, notion.
func DefaultPlatforms(logger *slog.Logger) *Platforms {
	ps := &Platforms{byID: map[string]Platform{}}
	for _, p := range []*stubPlatform{
		{
			id: "wiki", name: "Wiki", description: "导出到企业Wiki平台",
			options: []PlatformOption{{Name: "wikiSpace", Label: "Wiki空间", Placeholder: "请输入Wiki空间名称", Required: true}},
		},
		{
			id: "feishu", name: "飞书", description: "导出到飞书文档",
			options: []PlatformOption{{Name: "feishuFolder", Label: "飞书文档夹", Placeholder: "请输入飞书文档夹", Required: true}},
		},
		{
			id: "yuque", name: "语雀", description: "导出到语雀知识库",
			options: []PlatformOption{
				{Name: "yuqueRepo", Label: "语雀知识库", Placeholder: "请输入语雀知识库", Required: true},
				{Name: "yuqueGroup", Label: "语雀分组", Placeholder: "请输入语雀分组（可选）"},
			},
		},
		{
			id: "notion", name: "Notion", description: "导出到Notion",
			options: []PlatformOption{{Name: "notionDatabase", Label: "Notion数据库ID", Placeholder: "请输入Notion数据库ID", Required: true}},
		},
	} {
		p.logger = logger
		ps.Register(p)
	}
	return ps
}

// Register adds or replaces a platform, keeping first-registration order.
func (ps *Platforms) Register(p Platform) {
	if p == nil {
		return
	}
	if ps.byID == nil {
		ps.byID = map[string]Platform{}
	}
	if _, exists := ps.byID[p.ID()]; !exists {
		ps.order = append(ps.order, p.ID())
	}
	ps.byID[p.ID()] = p
}

// Get returns the platform registered under id.
func (ps *Platforms) Get(id string) (Platform, error) {
	p, ok := ps.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlatformNotFound, id)
	}
	return p, nil
}

// List returns platforms in registration order.
func (ps *Platforms) List() []Platform {
	out := make([]Platform, 0, len(ps.order))
	for _, id := range ps.order {
		out = append(out, ps.byID[id])
	}
	return out
}

// Check validates the title and every required option of p.
func Check(p Platform, opts Options) validation.Errors {
	var errs validation.Errors
	if strings.TrimSpace(opts.Title) == "" {
		errs = append(errs, validation.FieldError{Path: OptionTitle, Label: "文档标题", Message: "请输入文档标题"})
	}
	for _, option := range p.RequiredOptions() {
		if !option.Required || strings.TrimSpace(opts.Values[option.Name]) != "" {
			continue
		}
		errs = append(errs, validation.FieldError{Path: option.Name, Label: option.Label, Message: option.Message()})
	}
	return errs
}

// Publish validates opts for the platform and exports content. A false
// result without error means the platform declined the export.
func (ps *Platforms) Publish(ctx context.Context, id, content string, opts Options) (bool, error) {
	p, err := ps.Get(id)
	if err != nil {
		return false, err
	}
	if errs := Check(p, opts); len(errs) > 0 {
		return false, errs
	}
	ok, err := p.Export(ctx, content, opts)
	if err != nil {
		return false, fmt.Errorf("export: publish to %s: %w", id, err)
	}
	return ok, nil
}
