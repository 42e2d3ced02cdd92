package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentID is a value object for comment identity.
type CommentID struct{ uuid.UUID }

// NewCommentID creates a new CommentID from uuid.
func NewCommentID(id uuid.UUID) CommentID { return CommentID{UUID: id} }

// String returns the canonical string form.
func (c CommentID) String() string { return c.UUID.String() }

// Comment belongs to exactly one issue and, transitively, one project.
// ProjectID is stored redundantly and must equal the parent issue's project
// id; write paths validate the pair before persisting.
type Comment struct {
	ID          CommentID
	ProjectID   ProjectID
	IssueID     IssueID
	Description string
	AuthorID    UserID
	CreatedAt   time.Time
}

// OwnerProjectID returns the owning project.
func (c *Comment) OwnerProjectID() ProjectID { return c.ProjectID }

// AuthorUserID returns the recorded author.
func (c *Comment) AuthorUserID() (UserID, bool) { return c.AuthorID, true }
