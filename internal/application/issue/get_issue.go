package issue

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/domain"
)

// GetIssue returns one issue by id within a project. Non-members get
// ErrNotFound even with a valid direct id.
type GetIssue struct {
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewGetIssue builds the use case.
func NewGetIssue(resolver *authz.Resolver, engine *authz.Engine) *GetIssue {
	return &GetIssue{resolver: resolver, engine: engine}
}

// Execute loads and authorizes the read.
func (uc *GetIssue) Execute(ctx context.Context, user domain.UserID, projectID domain.ProjectID, id domain.IssueID) (*domain.Issue, error) {
	issue, err := uc.resolver.Issue(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.engine.Authorize(ctx, user, issue, authz.ActionRead); err != nil {
		return nil, err
	}
	return issue, nil
}
