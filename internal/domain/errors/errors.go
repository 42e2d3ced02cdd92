package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	// ErrUnauthorized means the caller carries no valid identity.
	ErrUnauthorized = errors.New("missing or invalid credentials")
	// ErrNotFound covers both genuine absence and zero-visibility lookups;
	// callers outside a project's scope cannot tell the two apart.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden means the target is known to exist but the permission
	// lattice denies the action.
	ErrForbidden = errors.New("operation not permitted")
	// ErrDuplicateContributor signals an upsert that would change nothing:
	// the user already holds the requested permission in the project.
	ErrDuplicateContributor = errors.New("contributor already exists with the same permission")
	// ErrValidation covers malformed field values, rejected before any
	// authorization check.
	ErrValidation = errors.New("invalid request")
	// ErrUserExists signals a signup with an email already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials signals a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
