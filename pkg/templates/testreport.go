package templates

import (
	"github.com/goliatone/go-formdoc/pkg/document"
	"github.com/goliatone/go-formdoc/pkg/values"
)

type labeledPath struct {
	path     string
	label    string
	required bool
}

var testReportDocuments = []labeledPath{
	{path: "documents.prdDocument", label: "PRD原型稿", required: true},
	{path: "documents.backendDocument", label: "后端技术文档"},
	{path: "documents.frontendDocument", label: "前端技术文档"},
	{path: "documents.uiDocument", label: "UI稿"},
	{path: "documents.smokeDoc", label: "冒烟文档"},
}

var testReportProjectTables = []labeledPath{
	{path: "projects.frontendProjects", label: "前端项目", required: true},
	{path: "projects.backendProjects", label: "后端项目", required: true},
}

var testReportConfigs = []labeledPath{
	{path: "serverConfigs.apolloConfig", label: "Apollo配置"},
	{path: "serverConfigs.databaseConfig", label: "数据库配置"},
	{path: "serverConfigs.jobConfig", label: "定时脚本&消费队列"},
}

var testReportBranches = []labeledPath{
	{path: "developBranch", label: "开发分支", required: true},
	{path: "testBranch", label: "测试分支", required: true},
}

var testReportMembers = []labeledPath{
	{path: "projectMembers.productManager", label: "产品人员", required: true},
	{path: "projectMembers.frontendDeveloper", label: "前端开发", required: true},
	{path: "projectMembers.backendDeveloper", label: "后端开发", required: true},
	{path: "projectMembers.tester", label: "测试人员", required: true},
}

var projectTableHeaders = []string{"项目名", "Git地址", "Jenkins地址"}

func testReportMarkdown(in *document.Input) string {
	s := newMarkdownSink()
	writeTestReport(in, s)
	return s.String()
}

func testReportHTML(in *document.Input) string {
	s := newHTMLSink(in.Policy(), "p")
	writeTestReport(in, s)
	return s.String()
}

func writeTestReport(in *document.Input, s sink) {
	s.heading(1, in.Title("projectName", "提测文档"))

	var basics []document.Item
	if in.Visible("projectName") {
		basics = append(basics, document.Item{Label: "项目名称", Value: in.Text("projectName")})
	}
	if docs := listItems(in, testReportDocuments); len(docs) > 0 {
		basics = append(basics, document.Item{Label: "相关文档", Children: docs})
	}
	if len(basics) > 0 {
		s.heading(2, "基本信息")
		s.list(basics...)
	}

	writeProjectTables(in, s)
	writeServerConfigs(in, s)

	if branches := listItems(in, testReportBranches); len(branches) > 0 {
		s.heading(2, "分支信息")
		s.list(branches...)
	}
	if members := listItems(in, testReportMembers); len(members) > 0 {
		s.heading(2, "项目参与人员")
		s.list(members...)
	}

	writeOptionalBody(in, s, "attention", "注意事项")
	writeOptionalBody(in, s, "remark", "备注")
}

func writeProjectTables(in *document.Input, s sink) {
	var visible []labeledPath
	for _, table := range testReportProjectTables {
		if in.Visible(table.path) && (table.required || in.Has(table.path)) {
			visible = append(visible, table)
		}
	}
	if len(visible) == 0 {
		return
	}

	s.heading(2, "项目信息")
	for _, table := range visible {
		s.heading(3, table.label)
		rows := in.Rows(table.path)
		if len(rows) == 0 {
			continue
		}
		cells := make([][]string, 0, len(rows))
		for _, row := range rows {
			cells = append(cells, []string{row.String("repoUrl"), row.String("gitUrl"), row.String("jenkinsUrl")})
		}
		s.table(projectTableHeaders, cells)
	}
}

func writeServerConfigs(in *document.Input, s sink) {
	var configs []labeledPath
	for _, cfg := range testReportConfigs {
		if in.Has(cfg.path) {
			configs = append(configs, cfg)
		}
	}
	var custom []values.Row
	for _, row := range in.Rows("serverConfigs.customConfigs") {
		if !row.Empty() {
			custom = append(custom, row)
		}
	}
	if len(configs) == 0 && len(custom) == 0 {
		return
	}

	s.heading(2, "服务端配置")
	for _, cfg := range configs {
		s.heading(3, cfg.label)
		s.code(in.Text(cfg.path))
	}
	if len(custom) > 0 {
		s.heading(3, "自定义配置")
		for _, row := range custom {
			s.heading(3, row.String("name"))
			s.code(row.String("code"))
		}
	}
}

// listItems maps labeled paths to list items. Required fields appear even
// when empty; optional fields only when filled in. Hidden fields never
// appear.
func listItems(in *document.Input, entries []labeledPath) []document.Item {
	var items []document.Item
	for _, entry := range entries {
		if !in.Visible(entry.path) {
			continue
		}
		if !entry.required && !in.Has(entry.path) {
			continue
		}
		items = append(items, document.Item{Label: entry.label, Value: in.Text(entry.path)})
	}
	return items
}

func writeOptionalBody(in *document.Input, s sink, path, title string) {
	if !in.Has(path) {
		return
	}
	s.heading(2, title)
	s.body(in.Text(path))
}

func writeRequiredBody(in *document.Input, s sink, path, title string) {
	if !in.Visible(path) {
		return
	}
	s.heading(2, title)
	s.body(in.Text(path))
}
