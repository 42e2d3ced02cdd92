package project

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
)

// ListProjects returns the caller's visible projects: the union of projects
// they authored and projects where they hold a contributor record,
// deduplicated and ordered by id.
type ListProjects struct {
	projects ports.ProjectRepository
}

// NewListProjects builds the use case.
func NewListProjects(projects ports.ProjectRepository) *ListProjects {
	return &ListProjects{projects: projects}
}

// Execute lists projects visible to user.
func (uc *ListProjects) Execute(ctx context.Context, user domain.UserID) ([]*domain.Project, error) {
	return uc.projects.ListForUser(ctx, user)
}
