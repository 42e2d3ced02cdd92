package comment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// CreateCommentInput carries the fields of a new comment.
type CreateCommentInput struct {
	ProjectID   domain.ProjectID
	IssueID     domain.IssueID
	Description string
}

// CreateComment adds a comment under an issue. The comment inherits the
// issue's project id; the pair is validated before persisting so the
// redundant column can never drift.
type CreateComment struct {
	comments ports.CommentRepository
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewCreateComment builds the use case.
func NewCreateComment(comments ports.CommentRepository, resolver *authz.Resolver, engine *authz.Engine) *CreateComment {
	return &CreateComment{comments: comments, resolver: resolver, engine: engine}
}

// Execute validates the chain, authorizes create-child and persists.
func (uc *CreateComment) Execute(ctx context.Context, user domain.UserID, input CreateCommentInput) (*domain.Comment, error) {
	if input.Description == "" {
		return nil, domerrors.ErrValidation
	}
	issue, err := uc.resolver.Issue(ctx, input.ProjectID, input.IssueID)
	if err != nil {
		return nil, err
	}
	if err := uc.engine.Authorize(ctx, user, issue, authz.ActionCreateChild); err != nil {
		return nil, err
	}
	comment := &domain.Comment{
		ID:          domain.NewCommentID(uuid.New()),
		ProjectID:   issue.ProjectID,
		IssueID:     issue.ID,
		Description: input.Description,
		AuthorID:    user,
		CreatedAt:   time.Now(),
	}
	if err := uc.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
