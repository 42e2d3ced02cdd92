package project

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// CreateProjectInput carries the fields of a new project.
type CreateProjectInput struct {
	Author      domain.UserID
	Title       string
	Description string
	Type        domain.ProjectType
}

// CreateProject creates a project authored by the caller. The author needs
// no contributor record: authorship alone carries admin-equivalent rights.
type CreateProject struct {
	projects ports.ProjectRepository
}

// NewCreateProject builds the use case.
func NewCreateProject(projects ports.ProjectRepository) *CreateProject {
	return &CreateProject{projects: projects}
}

// Execute validates the input and persists the project.
func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	if input.Title == "" || !input.Type.Valid() {
		return nil, domerrors.ErrValidation
	}
	now := time.Now()
	project := &domain.Project{
		ID:          domain.NewProjectID(uuid.New()),
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		AuthorID:    input.Author,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
