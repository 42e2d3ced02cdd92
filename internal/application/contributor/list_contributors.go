package contributor

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
)

// ListContributors enumerates a project's members. Only the project author
// and admin contributors may do so; a plain member gets ErrForbidden.
type ListContributors struct {
	contributors ports.ContributorRepository
	resolver     *authz.Resolver
	engine       *authz.Engine
}

// NewListContributors builds the use case.
func NewListContributors(contributors ports.ContributorRepository, resolver *authz.Resolver, engine *authz.Engine) *ListContributors {
	return &ListContributors{contributors: contributors, resolver: resolver, engine: engine}
}

// Execute authorizes the caller and lists the memberships.
func (uc *ListContributors) Execute(ctx context.Context, caller domain.UserID, projectID domain.ProjectID) ([]*domain.Contributor, error) {
	if _, err := uc.resolver.Project(ctx, projectID); err != nil {
		return nil, err
	}
	if err := uc.engine.AuthorizeManage(ctx, caller, projectID); err != nil {
		return nil, err
	}
	return uc.contributors.ListByProject(ctx, projectID)
}
