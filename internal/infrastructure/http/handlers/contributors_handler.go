package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dastfox/softdesk/internal/application/contributor"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
)

// ContributorsHandler handles /projects/{projectID}/users/*. All endpoints
// require author or admin access to the project.
type ContributorsHandler struct {
	upsert *contributor.UpsertContributor
	list   *contributor.ListContributors
	get    *contributor.GetContributor
	remove *contributor.RemoveContributor
}

// NewContributorsHandler creates a handler for contributor endpoints.
func NewContributorsHandler(upsert *contributor.UpsertContributor, list *contributor.ListContributors, get *contributor.GetContributor, remove *contributor.RemoveContributor) *ContributorsHandler {
	return &ContributorsHandler{upsert: upsert, list: list, get: get, remove: remove}
}

// ContributorResponse is the JSON shape for a membership record.
type ContributorResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	ProjectID  string `json:"project_id"`
	Permission string `json:"permission"`
	Role       string `json:"role"`
	CreatedAt  string `json:"created_at"`
}

type upsertContributorRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	Permission string `json:"permission" validate:"required,oneof=admin user"`
	Role       string `json:"role" validate:"max=100"`
}

func contributorToResponse(c *domain.Contributor) ContributorResponse {
	return ContributorResponse{
		ID:         c.ID.String(),
		UserID:     c.UserID.String(),
		ProjectID:  c.ProjectID.String(),
		Permission: string(c.Permission),
		Role:       c.Role,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ContributorsHandler) projectID(w http.ResponseWriter, r *http.Request) (domain.ProjectID, bool) {
	id, ok := pathUUID(chi.URLParam(r, "projectID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid project id")
		return domain.ProjectID{}, false
	}
	return domain.NewProjectID(id), true
}

// List enumerates a project's members.
func (h *ContributorsHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, ok := h.projectID(w, r)
	if !ok {
		return
	}
	records, err := h.list.Execute(r.Context(), user, projectID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	items := make([]ContributorResponse, 0, len(records))
	for _, c := range records {
		items = append(items, contributorToResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"contributors": items})
}

// Upsert invites a user or changes an existing member's permission.
// A created record answers 201, an in-place permission change 200, and an
// unchanged permission 409.
func (h *ContributorsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, ok := h.projectID(w, r)
	if !ok {
		return
	}
	var req upsertContributorRequest
	if err := decodeValid(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	inviteeID, ok := pathUUID(req.UserID)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid user_id")
		return
	}
	result, err := h.upsert.Execute(r.Context(), user, contributor.UpsertContributorInput{
		ProjectID:  projectID,
		UserID:     domain.NewUserID(inviteeID),
		Permission: domain.Permission(req.Permission),
		Role:       req.Role,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	status := http.StatusOK
	if result.Outcome == ports.UpsertCreated {
		status = http.StatusCreated
	}
	writeJSON(w, status, contributorToResponse(result.Contributor))
}

// Get returns one membership record.
func (h *ContributorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, ok := h.projectID(w, r)
	if !ok {
		return
	}
	memberID, ok := pathUUID(chi.URLParam(r, "userID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid user id")
		return
	}
	record, err := h.get.Execute(r.Context(), user, projectID, domain.NewUserID(memberID))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contributorToResponse(record))
}

// Remove deletes a membership record. Authored content stays.
func (h *ContributorsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, ok := h.projectID(w, r)
	if !ok {
		return
	}
	memberID, ok := pathUUID(chi.URLParam(r, "userID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.remove.Execute(r.Context(), user, projectID, domain.NewUserID(memberID)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
