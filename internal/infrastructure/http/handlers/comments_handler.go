package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dastfox/softdesk/internal/application/comment"
	"github.com/dastfox/softdesk/internal/domain"
)

// CommentsHandler handles /projects/{projectID}/issues/{issueID}/comments/*.
type CommentsHandler struct {
	create *comment.CreateComment
	list   *comment.ListComments
	get    *comment.GetComment
	update *comment.UpdateComment
	delete *comment.DeleteComment
}

// NewCommentsHandler creates a handler for comment endpoints.
func NewCommentsHandler(create *comment.CreateComment, list *comment.ListComments, get *comment.GetComment, update *comment.UpdateComment, delete_ *comment.DeleteComment) *CommentsHandler {
	return &CommentsHandler{create: create, list: list, get: get, update: update, delete: delete_}
}

// CommentResponse is the JSON shape for a comment.
type CommentResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	IssueID     string `json:"issue_id"`
	Description string `json:"description"`
	AuthorID    string `json:"author_user_id"`
	CreatedAt   string `json:"created_time"`
}

type commentRequest struct {
	Description string `json:"description" validate:"required,max=1000"`
}

func commentToResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:          c.ID.String(),
		ProjectID:   c.ProjectID.String(),
		IssueID:     c.IssueID.String(),
		Description: c.Description,
		AuthorID:    c.AuthorID.String(),
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

func (h *CommentsHandler) pathIDs(w http.ResponseWriter, r *http.Request) (domain.ProjectID, domain.IssueID, bool) {
	projectID, ok := pathUUID(chi.URLParam(r, "projectID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid project id")
		return domain.ProjectID{}, domain.IssueID{}, false
	}
	issueID, ok := pathUUID(chi.URLParam(r, "issueID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid issue id")
		return domain.ProjectID{}, domain.IssueID{}, false
	}
	return domain.NewProjectID(projectID), domain.NewIssueID(issueID), true
}

// List returns an issue's comments; an empty list when the caller has no
// access to the owning project.
func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, issueID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	comments, err := h.list.Execute(r.Context(), user, projectID, issueID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	items := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		items = append(items, commentToResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": items})
}

// Create adds a comment under the issue.
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, issueID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	var req commentRequest
	if err := decodeValid(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	c, err := h.create.Execute(r.Context(), user, comment.CreateCommentInput{
		ProjectID:   projectID,
		IssueID:     issueID,
		Description: req.Description,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, commentToResponse(c))
}

// Get returns one comment by id.
func (h *CommentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, issueID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	commentID, ok := pathUUID(chi.URLParam(r, "commentID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	c, err := h.get.Execute(r.Context(), user, projectID, issueID, domain.NewCommentID(commentID))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commentToResponse(c))
}

// Update mutates a comment's description.
func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, issueID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	commentID, ok := pathUUID(chi.URLParam(r, "commentID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	var req commentRequest
	if err := decodeValid(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	c, err := h.update.Execute(r.Context(), user, comment.UpdateCommentInput{
		ProjectID:   projectID,
		IssueID:     issueID,
		ID:          domain.NewCommentID(commentID),
		Description: req.Description,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commentToResponse(c))
}

// Delete removes a comment.
func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	projectID, issueID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	commentID, ok := pathUUID(chi.URLParam(r, "commentID"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	if err := h.delete.Execute(r.Context(), user, projectID, issueID, domain.NewCommentID(commentID)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
