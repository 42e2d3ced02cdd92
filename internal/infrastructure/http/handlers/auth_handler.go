package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dastfox/softdesk/internal/application/auth"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// AuthHandler handles /signup and /login.
type AuthHandler struct {
	signup *auth.Signup
	login  *auth.Login
	log    zerolog.Logger
}

// NewAuthHandler creates the handler.
func NewAuthHandler(signup *auth.Signup, login *auth.Login, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{signup: signup, login: login, log: log}
}

type signupRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	DisplayName string `json:"display_name" validate:"max=100"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

// Signup registers a user and returns an access token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeValid(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	result, err := h.signup.Execute(r.Context(), auth.SignupInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		if !errors.Is(err, domerrors.ErrUserExists) && !errors.Is(err, domerrors.ErrValidation) {
			h.log.Error().Err(err).Msg("signup failed")
		}
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: result.AccessToken,
		UserID:      result.User.ID.String(),
	})
}

// Login verifies credentials and returns an access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeValid(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		UserID:      result.User.ID.String(),
	})
}
