package handlers

import (
	"net/http"
	"time"

	"github.com/dastfox/softdesk/internal/application/ports"
)

// UsersHandler handles /users/me. Requires a bearer token.
type UsersHandler struct {
	users ports.UserRepository
}

// NewUsersHandler creates the handler.
func NewUsersHandler(users ports.UserRepository) *UsersHandler {
	return &UsersHandler{users: users}
}

// UserResponse is the JSON shape for a user (no credential fields).
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
}

// Me returns the authenticated user.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := callerID(r, w)
	if !ok {
		return
	}
	u, err := h.users.GetByID(r.Context(), user)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	if u == nil {
		writeErr(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	})
}
