package comment

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// UpdateCommentInput carries the single mutable comment field.
type UpdateCommentInput struct {
	ProjectID   domain.ProjectID
	IssueID     domain.IssueID
	ID          domain.CommentID
	Description string
}

// UpdateComment mutates a comment's description. Allowed for the project
// author, admin contributors, and the comment's own author.
type UpdateComment struct {
	comments ports.CommentRepository
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewUpdateComment builds the use case.
func NewUpdateComment(comments ports.CommentRepository, resolver *authz.Resolver, engine *authz.Engine) *UpdateComment {
	return &UpdateComment{comments: comments, resolver: resolver, engine: engine}
}

// Execute validates, authorizes the update and persists.
func (uc *UpdateComment) Execute(ctx context.Context, user domain.UserID, input UpdateCommentInput) (*domain.Comment, error) {
	if input.Description == "" {
		return nil, domerrors.ErrValidation
	}
	comment, err := uc.resolver.Comment(ctx, input.ProjectID, input.IssueID, input.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.engine.Authorize(ctx, user, comment, authz.ActionUpdate); err != nil {
		return nil, err
	}
	comment.Description = input.Description
	if err := uc.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
