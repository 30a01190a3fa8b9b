package templates

import "github.com/goliatone/go-formdoc/pkg/document"

var releasePlanBasics = []labeledPath{
	{path: "projectName", label: "项目名称", required: true},
	{path: "version", label: "版本号", required: true},
	{path: "releaseDate", label: "计划发布日期", required: true},
	{path: "releaseTime", label: "发布时间", required: true},
	{path: "releaseManager", label: "发布负责人", required: true},
	{path: "developers", label: "开发人员", required: true},
	{path: "testers", label: "测试人员", required: true},
	{path: "releaseBranch", label: "发布分支", required: true},
}

var releasePlanSections = []labeledPath{
	{path: "featureList", label: "功能列表", required: true},
	{path: "bugfixList", label: "Bugfix列表"},
	{path: "releasePlan", label: "发布计划步骤", required: true},
	{path: "rollbackPlan", label: "回滚计划", required: true},
	{path: "riskAssessment", label: "风险评估", required: true},
	{path: "postReleaseMonitoring", label: "发布后监控"},
	{path: "remarks", label: "备注"},
}

func releasePlanMarkdown(in *document.Input) string {
	s := newMarkdownSink()
	writeReleasePlan(in, s)
	return s.String()
}

func releasePlanHTML(in *document.Input) string {
	s := newHTMLSink(in.Policy(), "div")
	writeReleasePlan(in, s)
	return s.String()
}

func writeReleasePlan(in *document.Input, s sink) {
	s.heading(1, in.Title("projectName", "发布计划"))

	if basics := listItems(in, releasePlanBasics); len(basics) > 0 {
		s.heading(2, "基本信息")
		s.list(basics...)
	}

	for _, section := range releasePlanSections {
		if section.required {
			writeRequiredBody(in, s, section.path, section.label)
			continue
		}
		writeOptionalBody(in, s, section.path, section.label)
	}
}
