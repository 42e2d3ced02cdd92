package contributor

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// GetContributor returns one membership record. Same access rule as
// listing: project author or admin tier only.
type GetContributor struct {
	contributors ports.ContributorRepository
	resolver     *authz.Resolver
	engine       *authz.Engine
}

// NewGetContributor builds the use case.
func NewGetContributor(contributors ports.ContributorRepository, resolver *authz.Resolver, engine *authz.Engine) *GetContributor {
	return &GetContributor{contributors: contributors, resolver: resolver, engine: engine}
}

// Execute authorizes the caller and loads the record.
func (uc *GetContributor) Execute(ctx context.Context, caller domain.UserID, projectID domain.ProjectID, userID domain.UserID) (*domain.Contributor, error) {
	if _, err := uc.resolver.Project(ctx, projectID); err != nil {
		return nil, err
	}
	if err := uc.engine.AuthorizeManage(ctx, caller, projectID); err != nil {
		return nil, err
	}
	record, err := uc.contributors.Find(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domerrors.ErrNotFound
	}
	return record, nil
}
