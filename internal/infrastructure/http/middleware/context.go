package middleware

import (
	"context"

	"github.com/dastfox/softdesk/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// WithUser injects the authenticated user id into the context.
func WithUser(ctx context.Context, userID domain.UserID) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

// UserFromContext returns the authenticated user id, or false when the
// request carries no identity.
func UserFromContext(ctx context.Context) (domain.UserID, bool) {
	v := ctx.Value(userContextKey)
	if v == nil {
		return domain.UserID{}, false
	}
	id, ok := v.(domain.UserID)
	return id, ok
}
