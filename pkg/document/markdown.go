package document

import (
	"strings"
)

// Item is one entry of a bullet list: "- **Label**: Value". Children render
// as an indented sub-list.
type Item struct {
	Label    string
	Value    string
	Children []Item
}

// Markdown accumulates blocks separated by blank lines. Empty blocks are
// dropped so omitted sections leave no trace.
type Markdown struct {
	blocks []string
}

// NewMarkdown returns an empty builder.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

func (m *Markdown) add(block string) *Markdown {
	if strings.TrimSpace(block) != "" {
		m.blocks = append(m.blocks, block)
	}
	return m
}

// Heading writes an ATX heading of the given level.
func (m *Markdown) Heading(level int, text string) *Markdown {
	return m.add(strings.Repeat("#", clampLevel(level)) + " " + text)
}

// Paragraph writes text verbatim.
func (m *Markdown) Paragraph(text string) *Markdown {
	return m.add(text)
}

// List writes a bullet list.
func (m *Markdown) List(items ...Item) *Markdown {
	if len(items) == 0 {
		return m
	}
	var b strings.Builder
	writeMarkdownItems(&b, items, 0)
	return m.add(strings.TrimRight(b.String(), "\n"))
}

func writeMarkdownItems(b *strings.Builder, items []Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		line := indent + "- **" + item.Label + "**: " + item.Value
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
		writeMarkdownItems(b, item.Children, depth+1)
	}
}

// Table writes a pipe table. Line breaks inside cells become <br> so every
// row stays on one line.
func (m *Markdown) Table(headers []string, rows [][]string) *Markdown {
	if len(headers) == 0 {
		return m
	}
	var b strings.Builder
	writeMarkdownRow(&b, headers)
	separators := make([]string, len(headers))
	for i := range separators {
		separators[i] = "---"
	}
	writeMarkdownRow(&b, separators)
	for _, row := range rows {
		writeMarkdownRow(&b, row)
	}
	return m.add(strings.TrimRight(b.String(), "\n"))
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" ")
		b.WriteString(tableCell(cell))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func tableCell(cell string) string {
	cell = strings.ReplaceAll(cell, "\r\n", "\n")
	return strings.ReplaceAll(cell, "\n", "<br>")
}

// Code writes a fenced code block.
func (m *Markdown) Code(code string) *Markdown {
	return m.add("```\n" + strings.TrimRight(code, "\n") + "\n```")
}

// String returns the document with a trailing newline.
func (m *Markdown) String() string {
	if len(m.blocks) == 0 {
		return ""
	}
	return strings.Join(m.blocks, "\n\n") + "\n"
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}
