package project

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/domain"
)

// GetProject returns one project by id, subject to the permission lattice.
// Callers outside the project's scope get ErrNotFound.
type GetProject struct {
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewGetProject builds the use case.
func NewGetProject(resolver *authz.Resolver, engine *authz.Engine) *GetProject {
	return &GetProject{resolver: resolver, engine: engine}
}

// Execute loads and authorizes the read.
func (uc *GetProject) Execute(ctx context.Context, user domain.UserID, id domain.ProjectID) (*domain.Project, error) {
	project, err := uc.resolver.Project(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.engine.Authorize(ctx, user, project, authz.ActionRead); err != nil {
		return nil, err
	}
	return project, nil
}
