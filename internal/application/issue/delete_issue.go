package issue

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
)

// DeleteIssue removes an issue and, through the store's cascade, its
// comments.
type DeleteIssue struct {
	issues   ports.IssueRepository
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewDeleteIssue builds the use case.
func NewDeleteIssue(issues ports.IssueRepository, resolver *authz.Resolver, engine *authz.Engine) *DeleteIssue {
	return &DeleteIssue{issues: issues, resolver: resolver, engine: engine}
}

// Execute authorizes the delete and removes the issue.
func (uc *DeleteIssue) Execute(ctx context.Context, user domain.UserID, projectID domain.ProjectID, id domain.IssueID) error {
	issue, err := uc.resolver.Issue(ctx, projectID, id)
	if err != nil {
		return err
	}
	if err := uc.engine.Authorize(ctx, user, issue, authz.ActionDelete); err != nil {
		return err
	}
	return uc.issues.Delete(ctx, issue.ID)
}
