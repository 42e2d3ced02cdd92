package authz

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// Resolver walks the nesting chain (comment → issue → project) and loads
// the concrete resource a request targets. Every lookup checks that the
// child really belongs to the parent named in the request path; a mismatch
// is ErrNotFound, the same as absence.
type Resolver struct {
	projects ports.ProjectRepository
	issues   ports.IssueRepository
	comments ports.CommentRepository
}

// NewResolver builds a resolver over the three stores.
func NewResolver(projects ports.ProjectRepository, issues ports.IssueRepository, comments ports.CommentRepository) *Resolver {
	return &Resolver{projects: projects, issues: issues, comments: comments}
}

// Project loads a project or fails with ErrNotFound.
func (r *Resolver) Project(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	project, err := r.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrNotFound
	}
	return project, nil
}

// Issue loads an issue and verifies it belongs to projectID.
func (r *Resolver) Issue(ctx context.Context, projectID domain.ProjectID, id domain.IssueID) (*domain.Issue, error) {
	issue, err := r.issues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue == nil || issue.ProjectID != projectID {
		return nil, domerrors.ErrNotFound
	}
	return issue, nil
}

// Comment loads a comment and verifies the full chain: the comment belongs
// to issueID and the issue belongs to projectID. The comment's redundant
// project id must agree with its issue's project id.
func (r *Resolver) Comment(ctx context.Context, projectID domain.ProjectID, issueID domain.IssueID, id domain.CommentID) (*domain.Comment, error) {
	issue, err := r.Issue(ctx, projectID, issueID)
	if err != nil {
		return nil, err
	}
	comment, err := r.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.IssueID != issue.ID || comment.ProjectID != issue.ProjectID {
		return nil, domerrors.ErrNotFound
	}
	return comment, nil
}
