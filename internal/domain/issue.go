package domain

import (
	"time"

	"github.com/google/uuid"
)

// IssueID is a value object for issue identity.
type IssueID struct{ uuid.UUID }

// NewIssueID creates a new IssueID from uuid.
func NewIssueID(id uuid.UUID) IssueID { return IssueID{UUID: id} }

// String returns the canonical string form.
func (i IssueID) String() string { return i.UUID.String() }

// IssueTag classifies the kind of work an issue tracks.
type IssueTag string

const (
	TagBug     IssueTag = "bug"
	TagFeature IssueTag = "feature"
	TagTask    IssueTag = "task"
)

// Valid reports whether t is a known tag.
func (t IssueTag) Valid() bool {
	return t == TagBug || t == TagFeature || t == TagTask
}

// IssuePriority orders issues by urgency.
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
)

// Valid reports whether p is a known priority.
func (p IssuePriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// IssueStatus tracks an issue's lifecycle.
type IssueStatus string

const (
	StatusOpen       IssueStatus = "open"
	StatusInProgress IssueStatus = "in progress"
	StatusClosed     IssueStatus = "closed"
)

// Valid reports whether s is a known status.
func (s IssueStatus) Valid() bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusClosed
}

// Issue belongs to exactly one project. Author and assignee are user ids,
// not necessarily contributors at read time: membership may have been
// revoked after authoring. CreatedAt is server-set at creation and never
// modified.
type Issue struct {
	ID          IssueID
	ProjectID   ProjectID
	Title       string
	Description string
	Tag         IssueTag
	Priority    IssuePriority
	Status      IssueStatus
	AuthorID    UserID
	AssigneeID  UserID
	CreatedAt   time.Time
}

// OwnerProjectID returns the owning project.
func (i *Issue) OwnerProjectID() ProjectID { return i.ProjectID }

// AuthorUserID returns the recorded author.
func (i *Issue) AuthorUserID() (UserID, bool) { return i.AuthorID, true }
