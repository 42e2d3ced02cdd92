// Package authz holds the permission lattice and the ownership resolution
// that scopes every request to a project.
package authz

import (
	"context"
	"errors"

	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// Action classifies what the caller wants to do with a resource.
type Action int

const (
	// ActionRead covers single-object reads.
	ActionRead Action = iota
	// ActionCreateChild covers creating child resources under the target
	// (issues under a project, comments under an issue).
	ActionCreateChild
	// ActionUpdate covers mutation of the target itself.
	ActionUpdate
	// ActionDelete covers deletion of the target itself.
	ActionDelete
)

// String returns the action name for logs.
func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionCreateChild:
		return "create-child"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Engine renders allow/deny decisions for (user, resource, action) tuples.
// Two permission concepts exist side by side: the project-level membership
// tier (admin/user) and per-object authorship. Authorship is a narrow
// override granting self-edit rights on the specific object, never broader
// admin rights.
type Engine struct {
	projects     ports.ProjectRepository
	contributors ports.ContributorRepository
	onDecision   func(action string, allowed bool)
}

// NewEngine builds the decision engine.
func NewEngine(projects ports.ProjectRepository, contributors ports.ContributorRepository) *Engine {
	return &Engine{projects: projects, contributors: contributors}
}

// SetDecisionHook installs a callback invoked after every rendered
// decision, for metrics. Storage failures do not trigger it.
func (e *Engine) SetDecisionHook(fn func(action string, allowed bool)) {
	e.onDecision = fn
}

func (e *Engine) record(action string, allowed bool) {
	if e.onDecision != nil {
		e.onDecision(action, allowed)
	}
}

// Authorize decides whether user may perform action on res. It returns nil
// on allow, ErrNotFound when the caller has zero visibility (non-members
// cannot tell a denied lookup from an absent row), and ErrForbidden when
// the caller may see the target but the lattice denies the action.
//
// Evaluation order, first match wins:
//  1. project author: allow everything;
//  2. recorded author of the object: allow update/delete of that object,
//     even without a membership record — a revoked contributor keeps
//     self-edit over objects they authored. Never applies to contributor
//     records, which only admins and the project author may alter;
//  3. no membership: deny with ErrNotFound;
//  4. admin tier: allow everything;
//  5. user tier: allow read and create-child, deny update/delete.
func (e *Engine) Authorize(ctx context.Context, user domain.UserID, res domain.Resource, action Action) error {
	err := e.decide(ctx, user, res, action)
	switch {
	case err == nil:
		e.record(action.String(), true)
	case errors.Is(err, domerrors.ErrNotFound) || errors.Is(err, domerrors.ErrForbidden):
		e.record(action.String(), false)
	}
	return err
}

func (e *Engine) decide(ctx context.Context, user domain.UserID, res domain.Resource, action Action) error {
	project, err := e.projects.GetByID(ctx, res.OwnerProjectID())
	if err != nil {
		return err
	}
	if project == nil {
		return domerrors.ErrNotFound
	}
	if project.AuthorID == user {
		return nil
	}
	if author, ok := res.AuthorUserID(); ok && author == user {
		if action == ActionUpdate || action == ActionDelete {
			return nil
		}
	}
	member, err := e.contributors.Find(ctx, user, project.ID)
	if err != nil {
		return err
	}
	if member == nil {
		return domerrors.ErrNotFound
	}
	if member.Permission == domain.PermissionAdmin {
		return nil
	}
	if action == ActionRead || action == ActionCreateChild {
		return nil
	}
	return domerrors.ErrForbidden
}

// AuthorizeManage allows only the project author and admin contributors.
// Contributor management (listing, inviting, role changes, removal) goes
// through here: a plain member gets ErrForbidden, a non-member ErrNotFound.
func (e *Engine) AuthorizeManage(ctx context.Context, user domain.UserID, projectID domain.ProjectID) error {
	err := e.decideManage(ctx, user, projectID)
	switch {
	case err == nil:
		e.record("manage", true)
	case errors.Is(err, domerrors.ErrNotFound) || errors.Is(err, domerrors.ErrForbidden):
		e.record("manage", false)
	}
	return err
}

func (e *Engine) decideManage(ctx context.Context, user domain.UserID, projectID domain.ProjectID) error {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return domerrors.ErrNotFound
	}
	if project.AuthorID == user {
		return nil
	}
	member, err := e.contributors.Find(ctx, user, projectID)
	if err != nil {
		return err
	}
	if member == nil {
		return domerrors.ErrNotFound
	}
	if member.Permission == domain.PermissionAdmin {
		return nil
	}
	return domerrors.ErrForbidden
}

// CanView reports whether user may read within the project at all: the
// author and any contributor may, everyone else may not. List endpoints use
// this to degrade denied access to an empty collection instead of an error.
func (e *Engine) CanView(ctx context.Context, user domain.UserID, project *domain.Project) (bool, error) {
	if project.AuthorID == user {
		return true, nil
	}
	member, err := e.contributors.Find(ctx, user, project.ID)
	if err != nil {
		return false, err
	}
	return member != nil, nil
}
