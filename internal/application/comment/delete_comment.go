package comment

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
)

// DeleteComment removes a comment.
type DeleteComment struct {
	comments ports.CommentRepository
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewDeleteComment builds the use case.
func NewDeleteComment(comments ports.CommentRepository, resolver *authz.Resolver, engine *authz.Engine) *DeleteComment {
	return &DeleteComment{comments: comments, resolver: resolver, engine: engine}
}

// Execute authorizes the delete and removes the comment.
func (uc *DeleteComment) Execute(ctx context.Context, user domain.UserID, projectID domain.ProjectID, issueID domain.IssueID, id domain.CommentID) error {
	comment, err := uc.resolver.Comment(ctx, projectID, issueID, id)
	if err != nil {
		return err
	}
	if err := uc.engine.Authorize(ctx, user, comment, authz.ActionDelete); err != nil {
		return err
	}
	return uc.comments.Delete(ctx, comment.ID)
}
