package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dastfox/softdesk/internal/domain"
	"github.com/dastfox/softdesk/internal/infrastructure/http/middleware"
)

var validate = validator.New()

// decodeValid decodes the JSON body into dst and runs struct validation.
// Malformed requests are rejected here, before any authorization check.
func decodeValid(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

// pathUUID parses a uuid path parameter; ok is false when it is missing or
// malformed.
func pathUUID(raw string) (uuid.UUID, bool) {
	if raw == "" {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}

// callerID pulls the authenticated user from the request context.
func callerID(r *http.Request, w http.ResponseWriter) (domain.UserID, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return domain.UserID{}, false
	}
	return user, true
}
