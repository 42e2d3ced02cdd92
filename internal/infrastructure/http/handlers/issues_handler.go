package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dastfox/softdesk/internal/application/issue"
	"github.com/dastfox/softdesk/internal/domain"
)

// IssuesHandler handles /projects/{projectID}/issues/*.
type IssuesHandler struct {
	create *issue.CreateIssue
	list   *issue.ListIssues
	get    *issue.GetIssue
	update *issue.UpdateIssue
	delete *issue.DeleteIssue
}

// NewIssuesHandler creates a handler for issue endpoints.
func NewIssuesHandler(create *issue.CreateIssue, list *issue.ListIssues, get *issue.GetIssue, update *issue.UpdateIssue, delete_ *issue.DeleteIssue) *IssuesHandler {
	return &IssuesHandler{create: create, list: list, get: get, update: update, delete: delete_}
}

// IssueResponse is the JSON shape for an issue.
type IssueResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	AuthorID    string `json:"author_user_id"`
	AssigneeID  string `json:"assignee_user_id"`
	CreatedAt   string `json:"created_time"`
}

type issueRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Tag         string `json:"tag" validate:"required,oneof=bug feature task"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high"`
	Status      string `json:"status" validate:"required,oneof=open 'in progress' closed"`
	AssigneeID  string `json:"assignee_user_id" validate:"omitempty,uuid"`
}

func issueToResponse(i *domain.Issue) IssueResponse {
	return IssueResponse{
		ID:          i.ID.String(),
		ProjectID:   i.ProjectID.String(),
		Title:       i.Title,
		Description: i.Description,
		Tag:         string(i.Tag),
		Priority:    string(i.Priority),
		Status:      string(i.Status),
		AuthorID:    i.AuthorID.String(),
		AssigneeID:  i.AssigneeID.String(),
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
	}
}

func (h *IssuesHandler) pathIDs(w http.ResponseWriter, r *http.Request) (domain.ProjectID, bool) {
	id, ok := pathUUID(chi.URLParam(r, "projectID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid project id")
		return domain.ProjectID{}, false
	}
	return domain.NewProjectID(id), true
}

func (h *IssuesHandler) assignee(w http.ResponseWriter, raw string) (domain.UserID, bool) {
	if raw == "" {
		return domain.UserID{}, true
	}
	id, ok := pathUUID(raw)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid assignee_user_id")
		return domain.UserID{}, false
	}
	return domain.NewUserID(id), true
}

// List returns a project's issues; an empty list when the caller has no
// access to an existing project.
func (h *IssuesHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	issues, err := h.list.Execute(r.Context(), user, projectID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	items := make([]IssueResponse, 0, len(issues))
	for _, i := range issues {
		items = append(items, issueToResponse(i))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"issues": items})
}

// Create files an issue under the project.
func (h *IssuesHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	var req issueRequest
	if err := decodeValid(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	assignee, ok := h.assignee(w, req.AssigneeID)
	if !ok {
		return
	}
	i, err := h.create.Execute(r.Context(), user, issue.CreateIssueInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Tag:         domain.IssueTag(req.Tag),
		Priority:    domain.IssuePriority(req.Priority),
		Status:      domain.IssueStatus(req.Status),
		AssigneeID:  assignee,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, issueToResponse(i))
}

// Get returns one issue by id.
func (h *IssuesHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	issueID, ok := pathUUID(chi.URLParam(r, "issueID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid issue id")
		return
	}
	i, err := h.get.Execute(r.Context(), user, projectID, domain.NewIssueID(issueID))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issueToResponse(i))
}

// Update mutates an issue.
func (h *IssuesHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	issueID, ok := pathUUID(chi.URLParam(r, "issueID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid issue id")
		return
	}
	var req issueRequest
	if err := decodeValid(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	assignee, ok := h.assignee(w, req.AssigneeID)
	if !ok {
		return
	}
	i, err := h.update.Execute(r.Context(), user, issue.UpdateIssueInput{
		ProjectID:   projectID,
		ID:          domain.NewIssueID(issueID),
		Title:       req.Title,
		Description: req.Description,
		Tag:         domain.IssueTag(req.Tag),
		Priority:    domain.IssuePriority(req.Priority),
		Status:      domain.IssueStatus(req.Status),
		AssigneeID:  assignee,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issueToResponse(i))
}

// Delete removes an issue and its comments.
func (h *IssuesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	issueID, ok := pathUUID(chi.URLParam(r, "issueID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid issue id")
		return
	}
	if err := h.delete.Execute(r.Context(), user, projectID, domain.NewIssueID(issueID)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
