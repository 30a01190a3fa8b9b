package templates

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/document"
	"github.com/goliatone/go-formdoc/pkg/values"
)

var weeklyProjectHeaders = []string{"项目名称", "本周进度", "下周计划", "风险"}

func weeklyReportMarkdown(in *document.Input) string {
	s := newMarkdownSink()
	writeWeeklyReport(in, s)
	return s.String()
}

func weeklyReportHTML(in *document.Input) string {
	s := newHTMLSink(in.Policy(), "p")
	writeWeeklyReport(in, s)
	return s.String()
}

func writeWeeklyReport(in *document.Input, s sink) {
	title := "周报"
	if name := in.Text("name"); name != "" {
		title = name + " 周报"
	}
	if date := in.Text("date"); date != "" {
		title += " - " + date
	}
	s.heading(1, strings.TrimSpace(title))

	if in.Visible("projects") {
		s.heading(2, "项目进展")
		// Every row is rendered, blank ones included, so the table keeps the
		// row count the author entered.
		if rows := in.Rows("projects"); len(rows) > 0 {
			empty := s.emptyCell("-")
			cells := make([][]string, 0, len(rows))
			for _, row := range rows {
				cells = append(cells, []string{
					row.Or("projectName", empty),
					row.Or("progress", empty),
					row.Or("plan", empty),
					row.Or("risk", empty),
				})
			}
			s.table(weeklyProjectHeaders, cells)
		}
	}

	if thoughts := filledRows(in.Rows("thoughts")); len(thoughts) > 0 {
		s.heading(2, "问题思考")
		for i, row := range thoughts {
			s.heading(3, "问题 "+strconv.Itoa(i+1))
			s.labeled("问题描述", row.String("problem"))
			s.labeled("思考内容", row.String("thinking"))
		}
	}

	if others := filledRows(in.Rows("others")); len(others) > 0 {
		s.heading(2, "其他")
		for i, row := range others {
			s.heading(3, "其他 "+strconv.Itoa(i+1))
			s.body(row.String("content"))
		}
	}
}

func filledRows(rows []values.Row) []values.Row {
	out := make([]values.Row, 0, len(rows))
	for _, row := range rows {
		if !row.Empty() {
			out = append(out, row)
		}
	}
	return out
}
