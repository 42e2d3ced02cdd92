package issue

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// UpdateIssueInput carries the mutable issue fields. Author, project and
// creation time are immutable.
type UpdateIssueInput struct {
	ProjectID   domain.ProjectID
	ID          domain.IssueID
	Title       string
	Description string
	Tag         domain.IssueTag
	Priority    domain.IssuePriority
	Status      domain.IssueStatus
	AssigneeID  domain.UserID
}

// UpdateIssue mutates an issue. Allowed for the project author, admin
// contributors, and the issue's own author regardless of tier.
type UpdateIssue struct {
	issues   ports.IssueRepository
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewUpdateIssue builds the use case.
func NewUpdateIssue(issues ports.IssueRepository, resolver *authz.Resolver, engine *authz.Engine) *UpdateIssue {
	return &UpdateIssue{issues: issues, resolver: resolver, engine: engine}
}

// Execute validates, authorizes the update and persists the new fields.
func (uc *UpdateIssue) Execute(ctx context.Context, user domain.UserID, input UpdateIssueInput) (*domain.Issue, error) {
	if input.Title == "" || !input.Tag.Valid() || !input.Priority.Valid() || !input.Status.Valid() {
		return nil, domerrors.ErrValidation
	}
	issue, err := uc.resolver.Issue(ctx, input.ProjectID, input.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.engine.Authorize(ctx, user, issue, authz.ActionUpdate); err != nil {
		return nil, err
	}
	issue.Title = input.Title
	issue.Description = input.Description
	issue.Tag = input.Tag
	issue.Priority = input.Priority
	issue.Status = input.Status
	if !input.AssigneeID.IsZero() {
		issue.AssigneeID = input.AssigneeID
	}
	if err := uc.issues.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}
