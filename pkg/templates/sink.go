package templates

import (
	"github.com/goliatone/go-formdoc/pkg/document"
)

// sink lets one section plan drive both output formats. Each template
// writes its layout once against a sink; the Markdown and HTML generators
// only differ in the sink they pass.
type sink interface {
	heading(level int, text string)
	list(items ...document.Item)
	table(headers []string, rows [][]string)
	code(text string)
	body(text string)
	labeled(label, value string)
	// emptyCell is the placeholder used for missing table cells when a
	// template asks for one.
	emptyCell(fallback string) string
	String() string
}

type markdownSink struct {
	md *document.Markdown
}

func newMarkdownSink() *markdownSink {
	return &markdownSink{md: document.NewMarkdown()}
}

func (s *markdownSink) heading(level int, text string)         { s.md.Heading(level, text) }
func (s *markdownSink) list(items ...document.Item)            { s.md.List(items...) }
func (s *markdownSink) table(headers []string, rows [][]string) { s.md.Table(headers, rows) }
func (s *markdownSink) code(text string)                       { s.md.Code(text) }
func (s *markdownSink) body(text string)                       { s.md.Paragraph(text) }
func (s *markdownSink) labeled(label, value string)            { s.md.Paragraph("**" + label + "**：" + value) }
func (s *markdownSink) emptyCell(fallback string) string       { return fallback }
func (s *markdownSink) String() string                         { return s.md.String() }

type htmlSink struct {
	html    *document.HTML
	policy  document.Policy
	bodyTag string
}

func newHTMLSink(policy document.Policy, bodyTag string) *htmlSink {
	return &htmlSink{html: document.NewHTML(policy), policy: policy, bodyTag: bodyTag}
}

func (s *htmlSink) heading(level int, text string)         { s.html.Heading(level, text) }
func (s *htmlSink) list(items ...document.Item)            { s.html.List(items...) }
func (s *htmlSink) table(headers []string, rows [][]string) { s.html.Table(headers, rows) }
func (s *htmlSink) code(text string)                       { s.html.Code(text) }
func (s *htmlSink) emptyCell(string) string                { return "" }
func (s *htmlSink) String() string                         { return s.html.String() }

func (s *htmlSink) body(text string) {
	if s.bodyTag == "div" {
		s.html.Div(text)
		return
	}
	s.html.Paragraph(text)
}

func (s *htmlSink) labeled(label, value string) {
	s.html.Block("<p><strong>" + label + "</strong>：" + s.policy.Apply(value) + "</p>")
}
