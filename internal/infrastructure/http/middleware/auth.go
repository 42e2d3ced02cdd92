package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
)

// AuthValidator validates the bearer token and sets the user id in the
// request context (see UserFromContext).
type AuthValidator struct {
	issuer ports.TokenIssuer
}

// NewAuthValidator builds the middleware.
func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

// Handler rejects requests without a valid token before any resolution
// happens.
func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeAuthErr(w, "missing or invalid authorization")
			return
		}
		userIDStr, err := m.issuer.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeAuthErr(w, "invalid token")
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			writeAuthErr(w, "invalid token")
			return
		}
		ctx := WithUser(r.Context(), domain.NewUserID(userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthErr(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"})
}
