package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dastfox/softdesk/internal/application/project"
	"github.com/dastfox/softdesk/internal/domain"
)

// ProjectsHandler handles /projects/*. Requires a bearer token.
type ProjectsHandler struct {
	create *project.CreateProject
	list   *project.ListProjects
	get    *project.GetProject
	update *project.UpdateProject
	delete *project.DeleteProject
}

// NewProjectsHandler creates a handler for project endpoints.
func NewProjectsHandler(create *project.CreateProject, list *project.ListProjects, get *project.GetProject, update *project.UpdateProject, delete_ *project.DeleteProject) *ProjectsHandler {
	return &ProjectsHandler{create: create, list: list, get: get, update: update, delete: delete_}
}

// ProjectResponse is the JSON shape for a project.
type ProjectResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	AuthorID    string `json:"author_user_id"`
	CreatedAt   string `json:"created_at"`
}

type projectRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Type        string `json:"type" validate:"required,oneof=back-end front-end ios android"`
}

func projectToResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		AuthorID:    p.AuthorID.String(),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

// List returns projects the caller authored or contributes to.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projects, err := h.list.Execute(r.Context(), user)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	items := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, projectToResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": items})
}

// Create creates a project authored by the caller.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	var req projectRequest
	if err := decodeValid(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	p, err := h.create.Execute(r.Context(), project.CreateProjectInput{
		Author:      user,
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.ProjectType(req.Type),
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectToResponse(p))
}

// Get returns one project by id.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	id, ok := pathUUID(chi.URLParam(r, "projectID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	p, err := h.get.Execute(r.Context(), user, domain.NewProjectID(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToResponse(p))
}

// Update mutates a project's title, description and type.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	id, ok := pathUUID(chi.URLParam(r, "projectID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req projectRequest
	if err := decodeValid(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	p, err := h.update.Execute(r.Context(), user, project.UpdateProjectInput{
		ID:          domain.NewProjectID(id),
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.ProjectType(req.Type),
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToResponse(p))
}

// Delete removes a project and everything under it.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	id, ok := pathUUID(chi.URLParam(r, "projectID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	if err := h.delete.Execute(r.Context(), user, domain.NewProjectID(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
