package document

import (
	"strconv"
	"strings"
)

const (
	tableOpen     = `<table border="1" cellspacing="0" cellpadding="5" style="border-collapse: collapse; width: 100%;">`
	tableHeadRow  = `<tr style="background-color: #f2f2f2;">`
	codeBlockOpen = `<pre style="background-color: #f5f5f5; padding: 10px; border-radius: 5px; overflow: auto;"><code>`
)

// HTML accumulates HTML blocks. Values pass through the configured Policy;
// labels and headers are trusted.
type HTML struct {
	blocks []string
	policy Policy
}

// NewHTML returns an empty builder applying policy to values.
func NewHTML(policy Policy) *HTML {
	return &HTML{policy: policy}
}

func (h *HTML) add(block string) *HTML {
	if strings.TrimSpace(block) != "" {
		h.blocks = append(h.blocks, block)
	}
	return h
}

// Heading writes <hN>. The text is treated as a value.
func (h *HTML) Heading(level int, text string) *HTML {
	tag := "h" + strconv.Itoa(clampLevel(level))
	return h.add("<" + tag + ">" + h.policy.Apply(text) + "</" + tag + ">")
}

// Paragraph writes <p>value</p>.
func (h *HTML) Paragraph(text string) *HTML {
	return h.add("<p>" + h.policy.Apply(text) + "</p>")
}

// Div writes <div>value</div>, used for multi-line bodies.
func (h *HTML) Div(text string) *HTML {
	return h.add("<div>" + h.policy.Apply(text) + "</div>")
}

// Block writes a pre-built fragment untouched.
func (h *HTML) Block(fragment string) *HTML {
	return h.add(fragment)
}

// List writes a <ul> of "<strong>Label</strong>: Value" items.
func (h *HTML) List(items ...Item) *HTML {
	if len(items) == 0 {
		return h
	}
	var b strings.Builder
	h.writeItems(&b, items, 0)
	return h.add(strings.TrimRight(b.String(), "\n"))
}

func (h *HTML) writeItems(b *strings.Builder, items []Item, depth int) {
	indent := strings.Repeat("    ", depth)
	b.WriteString(indent + "<ul>\n")
	for _, item := range items {
		b.WriteString(indent + "  <li><strong>" + item.Label + "</strong>:")
		if item.Value != "" {
			b.WriteString(" " + h.policy.Apply(item.Value))
		}
		if len(item.Children) > 0 {
			b.WriteString("\n")
			h.writeItems(b, item.Children, depth+1)
			b.WriteString(indent + "  ")
		}
		b.WriteString("</li>\n")
	}
	b.WriteString(indent + "</ul>\n")
}

// Table writes a bordered table with one <tr> per row inside <tbody>.
func (h *HTML) Table(headers []string, rows [][]string) *HTML {
	if len(headers) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(tableOpen + "\n")
	b.WriteString("  <thead>\n    " + tableHeadRow + "\n")
	for _, header := range headers {
		b.WriteString("      <th>" + header + "</th>\n")
	}
	b.WriteString("    </tr>\n  </thead>\n  <tbody>\n")
	for _, row := range rows {
		b.WriteString("    <tr>\n")
		for _, cell := range row {
			b.WriteString("      <td>" + h.policy.Apply(cell) + "</td>\n")
		}
		b.WriteString("    </tr>\n")
	}
	b.WriteString("  </tbody>\n</table>")
	return h.add(b.String())
}

// Code writes a styled <pre><code> block.
func (h *HTML) Code(code string) *HTML {
	return h.add(codeBlockOpen + h.policy.Apply(code) + "</code></pre>")
}

// String returns the fragment with a trailing newline.
func (h *HTML) String() string {
	if len(h.blocks) == 0 {
		return ""
	}
	return strings.Join(h.blocks, "\n\n") + "\n"
}
