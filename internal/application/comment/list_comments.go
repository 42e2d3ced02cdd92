package comment

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
)

// ListComments returns an issue's comments. As with issue listing, a caller
// with no access to the owning project gets an empty collection.
type ListComments struct {
	comments ports.CommentRepository
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewListComments builds the use case.
func NewListComments(comments ports.CommentRepository, resolver *authz.Resolver, engine *authz.Engine) *ListComments {
	return &ListComments{comments: comments, resolver: resolver, engine: engine}
}

// Execute lists comments visible to user under the issue.
func (uc *ListComments) Execute(ctx context.Context, user domain.UserID, projectID domain.ProjectID, issueID domain.IssueID) ([]*domain.Comment, error) {
	issue, err := uc.resolver.Issue(ctx, projectID, issueID)
	if err != nil {
		return nil, err
	}
	project, err := uc.resolver.Project(ctx, issue.ProjectID)
	if err != nil {
		return nil, err
	}
	visible, err := uc.engine.CanView(ctx, user, project)
	if err != nil {
		return nil, err
	}
	if !visible {
		return []*domain.Comment{}, nil
	}
	return uc.comments.ListByIssue(ctx, issue.ID)
}
