package comment

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/domain"
)

// GetComment returns one comment by id, walking the full
// comment → issue → project chain.
type GetComment struct {
	resolver *authz.Resolver
	engine   *authz.Engine
}

// NewGetComment builds the use case.
func NewGetComment(resolver *authz.Resolver, engine *authz.Engine) *GetComment {
	return &GetComment{resolver: resolver, engine: engine}
}

// Execute loads and authorizes the read.
func (uc *GetComment) Execute(ctx context.Context, user domain.UserID, projectID domain.ProjectID, issueID domain.IssueID, id domain.CommentID) (*domain.Comment, error) {
	comment, err := uc.resolver.Comment(ctx, projectID, issueID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.engine.Authorize(ctx, user, comment, authz.ActionRead); err != nil {
		return nil, err
	}
	return comment, nil
}
