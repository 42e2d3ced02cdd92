package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContributorID is a value object for membership-record identity.
type ContributorID struct{ uuid.UUID }

// NewContributorID creates a new ContributorID from uuid.
func NewContributorID(id uuid.UUID) ContributorID { return ContributorID{UUID: id} }

// String returns the canonical string form.
func (c ContributorID) String() string { return c.UUID.String() }

// Permission is a contributor's tier within a project.
type Permission string

const (
	// PermissionAdmin grants full read/write/delete within the project.
	PermissionAdmin Permission = "admin"
	// PermissionUser grants read and child-creation only.
	PermissionUser Permission = "user"
)

// Valid reports whether p is a known permission tier.
func (p Permission) Valid() bool {
	return p == PermissionAdmin || p == PermissionUser
}

// Contributor links a user to a project with a permission tier. At most one
// record exists per (user, project); re-inviting an existing member is a
// permission update, never a duplicate insert. Removing a contributor does
// not touch content they authored.
type Contributor struct {
	ID         ContributorID
	UserID     UserID
	ProjectID  ProjectID
	Permission Permission
	Role       string
	CreatedAt  time.Time
}

// OwnerProjectID returns the project the membership belongs to.
func (c *Contributor) OwnerProjectID() ProjectID { return c.ProjectID }

// AuthorUserID returns false: membership records have no author, so the
// self-author override never applies to them. Only admins and the project
// author may alter contributors.
func (c *Contributor) AuthorUserID() (UserID, bool) { return UserID{}, false }
