package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// ProjectType classifies a project.
type ProjectType string

const (
	ProjectTypeBackend  ProjectType = "back-end"
	ProjectTypeFrontend ProjectType = "front-end"
	ProjectTypeIOS      ProjectType = "ios"
	ProjectTypeAndroid  ProjectType = "android"
)

// Valid reports whether t is one of the known project types.
func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeBackend, ProjectTypeFrontend, ProjectTypeIOS, ProjectTypeAndroid:
		return true
	}
	return false
}

// Project is the scoping root of the permission model. AuthorID is immutable
// after creation; the author holds admin-equivalent rights without a
// Contributor record. Deleting a project cascades to its contributors,
// issues and comments.
type Project struct {
	ID          ProjectID
	Title       string
	Description string
	Type        ProjectType
	AuthorID    UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerProjectID returns the project's own id; a project is its own scope.
func (p *Project) OwnerProjectID() ProjectID { return p.ID }

// AuthorUserID returns the project author.
func (p *Project) AuthorUserID() (UserID, bool) { return p.AuthorID, true }
