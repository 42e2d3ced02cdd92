package issue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// CreateIssueInput carries the fields of a new issue. An absent assignee
// defaults to the author.
type CreateIssueInput struct {
	ProjectID   domain.ProjectID
	Title       string
	Description string
	Tag         domain.IssueTag
	Priority    domain.IssuePriority
	Status      domain.IssueStatus
	AssigneeID  domain.UserID
}

// CreateIssue files an issue under a project. User-tier contributors may
// create issues; only the creation of children is open to them, not
// mutation of existing ones.
type CreateIssue struct {
	issues   ports.IssueRepository
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewCreateIssue builds the use case.
func NewCreateIssue(issues ports.IssueRepository, resolver *authz.Resolver, engine *authz.Engine) *CreateIssue {
	return &CreateIssue{issues: issues, resolver: resolver, engine: engine}
}

// Execute validates, authorizes create-child on the project and persists.
func (uc *CreateIssue) Execute(ctx context.Context, user domain.UserID, input CreateIssueInput) (*domain.Issue, error) {
	if input.Title == "" || !input.Tag.Valid() || !input.Priority.Valid() || !input.Status.Valid() {
		return nil, domerrors.ErrValidation
	}
	project, err := uc.resolver.Project(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := uc.engine.Authorize(ctx, user, project, authz.ActionCreateChild); err != nil {
		return nil, err
	}
	assignee := input.AssigneeID
	if assignee.IsZero() {
		assignee = user
	}
	issue := &domain.Issue{
		ID:          domain.NewIssueID(uuid.New()),
		ProjectID:   project.ID,
		Title:       input.Title,
		Description: input.Description,
		Tag:         input.Tag,
		Priority:    input.Priority,
		Status:      input.Status,
		AuthorID:    user,
		AssigneeID:  assignee,
		CreatedAt:   time.Now(),
	}
	if err := uc.issues.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}
