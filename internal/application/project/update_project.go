package project

import (
	"context"
	"time"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// UpdateProjectInput carries the mutable project fields. The author is
// immutable after creation and cannot be changed here.
type UpdateProjectInput struct {
	ID          domain.ProjectID
	Title       string
	Description string
	Type        domain.ProjectType
}

// UpdateProject mutates a project's title, description and type.
type UpdateProject struct {
	projects ports.ProjectRepository
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewUpdateProject builds the use case.
func NewUpdateProject(projects ports.ProjectRepository, resolver *authz.Resolver, engine *authz.Engine) *UpdateProject {
	return &UpdateProject{projects: projects, resolver: resolver, engine: engine}
}

// Execute authorizes the update and persists the new fields.
func (uc *UpdateProject) Execute(ctx context.Context, user domain.UserID, input UpdateProjectInput) (*domain.Project, error) {
	if input.Title == "" || !input.Type.Valid() {
		return nil, domerrors.ErrValidation
	}
	project, err := uc.resolver.Project(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.engine.Authorize(ctx, user, project, authz.ActionUpdate); err != nil {
		return nil, err
	}
	project.Title = input.Title
	project.Description = input.Description
	project.Type = input.Type
	project.UpdatedAt = time.Now()
	if err := uc.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
