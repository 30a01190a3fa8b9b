package server

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/export"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/templates"
	"github.com/goliatone/go-formdoc/pkg/validation"
	"github.com/goliatone/go-formdoc/pkg/values"
)

type templateSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	list := s.orch.Templates()
	out := make([]templateSummary, 0, len(list))
	for _, tpl := range list {
		out = append(out, templateSummary{ID: tpl.ID, Name: tpl.Name, Description: tpl.Description})
	}
	jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	form, err := s.orch.FormModel(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, form)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	form, err := s.orch.FormModel(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, validation.Schema(form))
}

type documentsRequest struct {
	Values   map[string]any `json:"values"`
	Roles    []string       `json:"roles"`
	Validate bool           `json:"validate"`
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	var req documentsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	roles, err := s.parseRoles(strings.Join(req.Roles, ","))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	bag, err := values.Parse(req.Values)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	docs, err := s.orch.Documents(r.Context(), orchestrator.DocumentRequest{
		TemplateID: r.PathValue("id"),
		Values:     bag,
		Roles:      roles,
		Validate:   req.Validate,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, docs)
}

type valuesResponse struct {
	TemplateID string            `json:"templateId"`
	Mode       model.PreviewMode `json:"mode"`
	Saved      bool              `json:"saved"`
	Values     map[string]any    `json:"values"`
}

func (s *Server) handleGetValues(w http.ResponseWriter, r *http.Request) {
	tpl, mode, ok := s.templateAndMode(w, r)
	if !ok {
		return
	}
	saved := s.persistence.Load(tpl.ID, mode)
	resp := valuesResponse{TemplateID: tpl.ID, Mode: mode, Saved: saved != nil, Values: saved}
	if saved == nil {
		resp.Values = tpl.Defaults()
	}
	jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handlePutValues(w http.ResponseWriter, r *http.Request) {
	tpl, mode, ok := s.templateAndMode(w, r)
	if !ok {
		return
	}
	var raw map[string]any
	if err := decodeJSON(w, r, &raw); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	bag, err := values.Parse(raw)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.persistence.Save(tpl.ID, mode, bag)
	jsonResponse(w, http.StatusOK, valuesResponse{TemplateID: tpl.ID, Mode: mode, Saved: true, Values: bag})
}

func (s *Server) handleDeleteValues(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.orch.Template(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.persistence.Clear(tpl.ID)
	w.WriteHeader(http.StatusNoContent)
}

type platformSummary struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Options     []export.PlatformOption `json:"options"`
}

func (s *Server) handleListPlatforms(w http.ResponseWriter, _ *http.Request) {
	list := s.platforms.List()
	out := make([]platformSummary, 0, len(list))
	for _, p := range list {
		out = append(out, platformSummary{ID: p.ID(), Name: p.Name(), Description: p.Description(), Options: p.RequiredOptions()})
	}
	jsonResponse(w, http.StatusOK, out)
}

type publishRequest struct {
	Title   string            `json:"title"`
	Mode    string            `json:"mode"`
	Roles   []string          `json:"roles"`
	Options map[string]string `json:"options"`
	// Values overrides the saved values for the mode when present.
	Values map[string]any `json:"values"`
}

// handlePublish generates the active document for the mode and hands it to
// the platform. Required fields are validated first.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	tpl, err := s.orch.Template(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, err := model.ParsePreviewMode(req.Mode)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	roles, err := s.parseRoles(strings.Join(req.Roles, ","))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	raw := s.valuesFor(tpl, mode)
	if req.Values != nil {
		bag, err := values.Parse(req.Values)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		raw = bag
	}

	docs, err := s.orch.Documents(r.Context(), orchestrator.DocumentRequest{
		TemplateID: tpl.ID,
		Values:     raw,
		Roles:      roles,
		Validate:   true,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ok, err := s.platforms.Publish(r.Context(), r.PathValue("platform"), activeContent(mode, docs), export.Options{
		Title:  req.Title,
		Values: req.Options,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"platform": r.PathValue("platform"), "ok": ok})
}

// templateAndMode resolves the {id} path value and the ?mode= query. It
// writes the error response itself and reports false on failure.
func (s *Server) templateAndMode(w http.ResponseWriter, r *http.Request) (*templates.Template, model.PreviewMode, bool) {
	tpl, err := s.orch.Template(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, "", false
	}
	mode, err := model.ParsePreviewMode(r.URL.Query().Get("mode"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return nil, "", false
	}
	return tpl, mode, true
}

// parseRoles falls back to the configured roles when raw is blank.
func (s *Server) parseRoles(raw string) ([]model.Role, error) {
	roles, err := model.ParseRoles(raw)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return append([]model.Role(nil), s.roles...), nil
	}
	return roles, nil
}

func (s *Server) valuesFor(tpl *templates.Template, mode model.PreviewMode) map[string]any {
	if saved := s.persistence.Load(tpl.ID, mode); saved != nil {
		return saved
	}
	return tpl.Defaults()
}

// activeContent is the clipboard and publish payload: HTML in rich mode,
// Markdown otherwise.
func activeContent(mode model.PreviewMode, docs orchestrator.Documents) string {
	if mode == model.ModeRich {
		return docs.HTML
	}
	return docs.Markdown
}
