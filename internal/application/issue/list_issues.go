package issue

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
)

// ListIssues returns a project's issues. A caller with no access to an
// existing project gets an empty collection, not an error; only a missing
// project is ErrNotFound.
type ListIssues struct {
	issues   ports.IssueRepository
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewListIssues builds the use case.
func NewListIssues(issues ports.IssueRepository, resolver *authz.Resolver, engine *authz.Engine) *ListIssues {
	return &ListIssues{issues: issues, resolver: resolver, engine: engine}
}

// Execute lists issues visible to user under projectID.
func (uc *ListIssues) Execute(ctx context.Context, user domain.UserID, projectID domain.ProjectID) ([]*domain.Issue, error) {
	project, err := uc.resolver.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	visible, err := uc.engine.CanView(ctx, user, project)
	if err != nil {
		return nil, err
	}
	if !visible {
		return []*domain.Issue{}, nil
	}
	return uc.issues.ListByProject(ctx, project.ID)
}
