package ports

import (
	"context"

	"github.com/dastfox/softdesk/internal/domain"
)

// UpsertOutcome reports what a contributor upsert did.
type UpsertOutcome int

const (
	// UpsertCreated means a new membership record was inserted.
	UpsertCreated UpsertOutcome = iota
	// UpsertUpdated means an existing record's permission was changed.
	UpsertUpdated
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
}

// ProjectRepository defines persistence for projects. Lookups return
// (nil, nil) when the row is absent.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error)
	// ListForUser returns projects the user authored plus projects where the
	// user holds a contributor record, deduplicated, ordered by id.
	ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	// Delete cascades to the project's contributors, issues and comments.
	Delete(ctx context.Context, id domain.ProjectID) error
}

// ContributorRepository is the membership store: one record per
// (user, project), enforced by a uniqueness constraint.
type ContributorRepository interface {
	// Find returns the membership for (userID, projectID), or (nil, nil).
	Find(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) (*domain.Contributor, error)
	ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Contributor, error)
	// Upsert atomically inserts the record or updates the permission and role
	// of an existing one. An existing record with an identical permission
	// fails with errors.ErrDuplicateContributor. The check-then-act runs
	// under the uniqueness constraint so concurrent invitations cannot
	// produce two rows.
	Upsert(ctx context.Context, c *domain.Contributor) (UpsertOutcome, error)
	// Delete removes the membership; errors.ErrNotFound when none exists.
	// Content authored by the removed contributor is untouched.
	Delete(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) error
}

// IssueRepository defines persistence for issues.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id domain.IssueID) (*domain.Issue, error)
	ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Issue, error)
	Update(ctx context.Context, issue *domain.Issue) error
	Delete(ctx context.Context, id domain.IssueID) error
}

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id domain.CommentID) (*domain.Comment, error)
	ListByIssue(ctx context.Context, issueID domain.IssueID) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id domain.CommentID) error
}
