package contributor

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
)

// RemoveContributor deletes a membership record. Issues and comments the
// removed user authored stay in place; only access is revoked.
type RemoveContributor struct {
	contributors ports.ContributorRepository
	resolver     *authz.Resolver
	engine       *authz.Engine
}

// NewRemoveContributor builds the use case.
func NewRemoveContributor(contributors ports.ContributorRepository, resolver *authz.Resolver, engine *authz.Engine) *RemoveContributor {
	return &RemoveContributor{contributors: contributors, resolver: resolver, engine: engine}
}

// Execute authorizes the caller and deletes the membership; ErrNotFound
// when no record exists.
func (uc *RemoveContributor) Execute(ctx context.Context, caller domain.UserID, projectID domain.ProjectID, userID domain.UserID) error {
	if _, err := uc.resolver.Project(ctx, projectID); err != nil {
		return err
	}
	if err := uc.engine.AuthorizeManage(ctx, caller, projectID); err != nil {
		return err
	}
	return uc.contributors.Delete(ctx, userID, projectID)
}
