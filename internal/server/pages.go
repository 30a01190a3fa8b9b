package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/goliatone/go-formdoc/pkg/export"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/preview"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/templates"
	"github.com/goliatone/go-formdoc/pkg/validation"
	"github.com/goliatone/go-formdoc/pkg/values"
)

const (
	actionSave    = "save"
	actionPreview = "preview"
	savedNotice   = "已保存"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	list := s.orch.Templates()
	items := make([]any, 0, len(list))
	for _, tpl := range list {
		items = append(items, map[string]any{"id": tpl.ID, "name": tpl.Name, "description": tpl.Description})
	}
	s.renderPage(w, r, http.StatusOK, "文档模板", "templates/index", map[string]any{"templates": items})
}

func (s *Server) handleFormPage(w http.ResponseWriter, r *http.Request) {
	tpl, mode, ok := s.templateAndMode(w, r)
	if !ok {
		return
	}
	roles, err := s.parseRoles(r.URL.Query().Get("roles"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.renderForm(w, r, http.StatusOK, tpl, mode, render.RenderOptions{
		Values: s.valuesFor(tpl, mode),
		Roles:  roles,
	}, "")
}

// handleFormSubmit saves the posted values for the mode. The save action
// redisplays the form; the preview action validates and shows the preview,
// or the form with inline errors.
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.orch.Template(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := model.ParsePreviewMode(r.PostForm.Get(render.ModeField))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	roles, err := s.parseRoles(r.PostForm.Get(render.RolesField))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	form, err := s.orch.FormModel(r.Context(), tpl.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	bag, err := values.FromForm(form.Fields, r.PostForm)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.persistence.Save(tpl.ID, mode, bag)

	opts := render.RenderOptions{Values: bag, Roles: roles}
	if r.PostForm.Get("_action") == actionSave {
		s.renderForm(w, r, http.StatusOK, tpl, mode, opts, savedNotice)
		return
	}

	docs, err := s.orch.Documents(r.Context(), orchestrator.DocumentRequest{
		TemplateID: tpl.ID,
		Values:     bag,
		Roles:      roles,
		Validate:   true,
	})
	if err != nil {
		s.renderInvalid(w, r, tpl, mode, opts, err)
		return
	}
	s.renderPreview(w, r, tpl, mode, docs)
}

func (s *Server) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	tpl, mode, ok := s.templateAndMode(w, r)
	if !ok {
		return
	}
	roles, err := s.parseRoles(r.URL.Query().Get("roles"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	raw := s.valuesFor(tpl, mode)
	docs, err := s.orch.Documents(r.Context(), orchestrator.DocumentRequest{
		TemplateID: tpl.ID,
		Values:     raw,
		Roles:      roles,
		Validate:   true,
	})
	if err != nil {
		s.renderInvalid(w, r, tpl, mode, render.RenderOptions{Values: raw, Roles: roles}, err)
		return
	}
	s.renderPreview(w, r, tpl, mode, docs)
}

func (s *Server) handleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	tpl, docs, ok := s.exportDocuments(w, r)
	if !ok {
		return
	}
	writeFile(w, s.exporter.Markdown(tpl.Name, docs.Markdown))
}

func (s *Server) handleExportDoc(w http.ResponseWriter, r *http.Request) {
	tpl, docs, ok := s.exportDocuments(w, r)
	if !ok {
		return
	}
	file, err := s.exporter.Doc(tpl.Name, docs.HTML)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeFile(w, file)
}

// exportDocuments generates validated documents from the saved values of the
// requested mode.
func (s *Server) exportDocuments(w http.ResponseWriter, r *http.Request) (*templates.Template, orchestrator.Documents, bool) {
	tpl, mode, ok := s.templateAndMode(w, r)
	if !ok {
		return nil, orchestrator.Documents{}, false
	}
	roles, err := s.parseRoles(r.URL.Query().Get("roles"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return nil, orchestrator.Documents{}, false
	}
	docs, err := s.orch.Documents(r.Context(), orchestrator.DocumentRequest{
		TemplateID: tpl.ID,
		Values:     s.valuesFor(tpl, mode),
		Roles:      roles,
		Validate:   true,
	})
	if err != nil {
		s.writeError(w, r, err)
		return nil, orchestrator.Documents{}, false
	}
	return tpl, docs, true
}

func writeFile(w http.ResponseWriter, file export.File) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", file.ContentDisposition())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

// renderInvalid shows the form with inline errors for validation failures
// and falls back to writeError for anything else.
func (s *Server) renderInvalid(w http.ResponseWriter, r *http.Request, tpl *templates.Template, mode model.PreviewMode, opts render.RenderOptions, err error) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		s.writeError(w, r, err)
		return
	}
	opts.Errors = errs.Map()
	opts.FormErrors = errs.FormMessages()
	s.renderForm(w, r, http.StatusUnprocessableEntity, tpl, mode, opts, "")
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, tpl *templates.Template, mode model.PreviewMode, opts render.RenderOptions, notice string) {
	opts.Mode = mode
	opts.Action = "/templates/" + url.PathEscape(tpl.ID)
	opts.ExtraRows = s.extraRows

	body, _, err := s.orch.Form(r.Context(), orchestrator.FormRequest{
		TemplateID:    tpl.ID,
		RenderOptions: opts,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	modes := make([]any, 0, 2)
	for _, m := range model.PreviewModes() {
		modes = append(modes, string(m))
	}
	s.renderPage(w, r, status, tpl.Name, "templates/form_page", map[string]any{
		"template": map[string]any{"id": tpl.ID, "name": tpl.Name},
		"mode":     string(mode),
		"modes":    modes,
		"notice":   notice,
		"form":     string(body),
	})
}

func (s *Server) renderPreview(w http.ResponseWriter, r *http.Request, tpl *templates.Template, mode model.PreviewMode, docs orchestrator.Documents) {
	document := docs.HTML
	if mode == model.ModeMarkdown {
		document = preview.HTML(docs.Markdown)
	}
	s.renderPage(w, r, http.StatusOK, tpl.Name, "templates/preview", map[string]any{
		"template": map[string]any{"id": tpl.ID, "name": tpl.Name},
		"mode":     string(mode),
		"markdown": docs.Markdown,
		"document": document,
	})
}

// renderPage executes a page body template and wraps it in the layout.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, title, name string, data map[string]any) {
	content, err := s.pages.RenderTemplate(name, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	page, err := s.pages.RenderTemplate("templates/layout", map[string]any{
		"title":   title,
		"content": content,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page))
}
