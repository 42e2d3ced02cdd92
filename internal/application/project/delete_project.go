package project

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
)

// DeleteProject removes a project and, through the store's cascade, all of
// its contributors, issues and comments.
type DeleteProject struct {
	projects ports.ProjectRepository
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewDeleteProject builds the use case.
func NewDeleteProject(projects ports.ProjectRepository, resolver *authz.Resolver, engine *authz.Engine) *DeleteProject {
	return &DeleteProject{projects: projects, resolver: resolver, engine: engine}
}

// Execute authorizes the delete and removes the project.
func (uc *DeleteProject) Execute(ctx context.Context, user domain.UserID, id domain.ProjectID) error {
	project, err := uc.resolver.Project(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.engine.Authorize(ctx, user, project, authz.ActionDelete); err != nil {
		return err
	}
	return uc.projects.Delete(ctx, project.ID)
}
