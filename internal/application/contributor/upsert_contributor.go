// Package contributor holds the collaborator lifecycle: invitation,
// role change and removal, all restricted to project authors and admins.
package contributor

import (
	"context"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// UpsertContributorInput identifies the invitee and the requested tier.
type UpsertContributorInput struct {
	ProjectID  domain.ProjectID
	UserID     domain.UserID
	Permission domain.Permission
	Role       string
}

// UpsertContributorResult reports the record and whether it was created or
// updated in place.
type UpsertContributorResult struct {
	Contributor *domain.Contributor
	Outcome     ports.UpsertOutcome
}

// UpsertContributor invites a user or changes an existing member's
// permission. Re-inviting with an unchanged permission is a Conflict, not a
// silent no-op; the store runs the check-then-act atomically so concurrent
// invitations cannot produce duplicate memberships.
type UpsertContributor struct {
	contributors ports.ContributorRepository
	users        ports.UserRepository
	resolver     *authz.Resolver
	engine       *authz.Engine
}

// NewUpsertContributor builds the use case.
func NewUpsertContributor(contributors ports.ContributorRepository, users ports.UserRepository, resolver *authz.Resolver, engine *authz.Engine) *UpsertContributor {
	return &UpsertContributor{contributors: contributors, users: users, resolver: resolver, engine: engine}
}

// Execute verifies the project and invitee exist, authorizes the caller and
// upserts the membership.
func (uc *UpsertContributor) Execute(ctx context.Context, caller domain.UserID, input UpsertContributorInput) (*UpsertContributorResult, error) {
	if !input.Permission.Valid() {
		return nil, domerrors.ErrValidation
	}
	if _, err := uc.resolver.Project(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	if err := uc.engine.AuthorizeManage(ctx, caller, input.ProjectID); err != nil {
		return nil, err
	}
	invitee, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, domerrors.ErrNotFound
	}
	record := &domain.Contributor{
		UserID:     input.UserID,
		ProjectID:  input.ProjectID,
		Permission: input.Permission,
		Role:       input.Role,
	}
	outcome, err := uc.contributors.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}
	return &UpsertContributorResult{Contributor: record, Outcome: outcome}, nil
}
