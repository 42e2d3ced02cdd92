package authz_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
	"github.com/dastfox/softdesk/internal/infrastructure/persistence/memory"
)

type fixture struct {
	store   *memory.Store
	engine  *authz.Engine
	author  domain.UserID
	admin   domain.UserID
	member  domain.UserID
	outside domain.UserID
	project *domain.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:   store,
		engine:  authz.NewEngine(store.Projects(), store.Contributors()),
		author:  domain.NewUserID(uuid.New()),
		admin:   domain.NewUserID(uuid.New()),
		member:  domain.NewUserID(uuid.New()),
		outside: domain.NewUserID(uuid.New()),
	}
	f.project = &domain.Project{
		ID:       domain.NewProjectID(uuid.New()),
		Title:    "billing",
		Type:     domain.ProjectTypeBackend,
		AuthorID: f.author,
	}
	ctx := context.Background()
	require.NoError(t, store.Projects().Create(ctx, f.project))
	f.addContributor(t, f.admin, domain.PermissionAdmin)
	f.addContributor(t, f.member, domain.PermissionUser)
	return f
}

func (f *fixture) addContributor(t *testing.T, user domain.UserID, perm domain.Permission) {
	t.Helper()
	_, err := f.store.Contributors().Upsert(context.Background(), &domain.Contributor{
		ID:         domain.NewContributorID(uuid.New()),
		UserID:     user,
		ProjectID:  f.project.ID,
		Permission: perm,
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)
}

func (f *fixture) newIssue(author domain.UserID) *domain.Issue {
	return &domain.Issue{
		ID:        domain.NewIssueID(uuid.New()),
		ProjectID: f.project.ID,
		Title:     "crash on save",
		Tag:       domain.TagBug,
		Priority:  domain.PriorityHigh,
		Status:    domain.StatusOpen,
		AuthorID:  author,
	}
}

var allActions = []authz.Action{authz.ActionRead, authz.ActionCreateChild, authz.ActionUpdate, authz.ActionDelete}

func TestAuthorizeProjectAuthorAllowsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	issue := f.newIssue(f.member)
	for _, action := range allActions {
		require.NoError(t, f.engine.Authorize(ctx, f.author, f.project, action), action.String())
		require.NoError(t, f.engine.Authorize(ctx, f.author, issue, action), action.String())
	}
}

func TestAuthorizeAdminAllowsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	issue := f.newIssue(f.member)
	for _, action := range allActions {
		require.NoError(t, f.engine.Authorize(ctx, f.admin, issue, action), action.String())
	}
}

func TestAuthorizeMemberTier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	issue := f.newIssue(f.admin)

	require.NoError(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionRead))
	require.NoError(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionCreateChild))
	require.ErrorIs(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionUpdate), domerrors.ErrForbidden)
	require.ErrorIs(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionDelete), domerrors.ErrForbidden)
}

func TestAuthorizeSelfAuthorOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	issue := f.newIssue(f.member)

	// A plain member may edit and delete what they authored.
	require.NoError(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionUpdate))
	require.NoError(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionDelete))
}

func TestAuthorizeRevokedAuthorKeepsSelfEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	issue := f.newIssue(f.member)

	require.NoError(t, f.store.Contributors().Delete(ctx, f.member, f.project.ID))

	// Authorship outlives membership for update/delete of the object itself,
	// but read access is gone along with the membership.
	require.NoError(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionUpdate))
	require.NoError(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionDelete))
	require.ErrorIs(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionRead), domerrors.ErrNotFound)
}

func TestAuthorizeNonMemberGetsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	issue := f.newIssue(f.admin)
	for _, action := range allActions {
		require.ErrorIs(t, f.engine.Authorize(ctx, f.outside, f.project, action), domerrors.ErrNotFound, action.String())
		require.ErrorIs(t, f.engine.Authorize(ctx, f.outside, issue, action), domerrors.ErrNotFound, action.String())
	}
}

func TestAuthorizeMissingProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orphan := &domain.Issue{
		ID:        domain.NewIssueID(uuid.New()),
		ProjectID: domain.NewProjectID(uuid.New()),
		AuthorID:  f.author,
	}
	require.ErrorIs(t, f.engine.Authorize(ctx, f.author, orphan, authz.ActionRead), domerrors.ErrNotFound)
}

func TestContributorRecordHasNoSelfAuthorOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record, err := f.store.Contributors().Find(ctx, f.member, f.project.ID)
	require.NoError(t, err)
	require.NotNil(t, record)

	// A member cannot escalate by editing or deleting their own membership row.
	require.ErrorIs(t, f.engine.Authorize(ctx, f.member, record, authz.ActionUpdate), domerrors.ErrForbidden)
	require.ErrorIs(t, f.engine.Authorize(ctx, f.member, record, authz.ActionDelete), domerrors.ErrForbidden)
	require.NoError(t, f.engine.Authorize(ctx, f.author, record, authz.ActionDelete))
	require.NoError(t, f.engine.Authorize(ctx, f.admin, record, authz.ActionUpdate))
}

func TestAuthorizeManage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.engine.AuthorizeManage(ctx, f.author, f.project.ID))
	require.NoError(t, f.engine.AuthorizeManage(ctx, f.admin, f.project.ID))
	require.ErrorIs(t, f.engine.AuthorizeManage(ctx, f.member, f.project.ID), domerrors.ErrForbidden)
	require.ErrorIs(t, f.engine.AuthorizeManage(ctx, f.outside, f.project.ID), domerrors.ErrNotFound)
	require.ErrorIs(t, f.engine.AuthorizeManage(ctx, f.author, domain.NewProjectID(uuid.New())), domerrors.ErrNotFound)
}

func TestCanView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, user := range []domain.UserID{f.author, f.admin, f.member} {
		ok, err := f.engine.CanView(ctx, user, f.project)
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := f.engine.CanView(ctx, f.outside, f.project)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDecisionHook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	type decision struct {
		action  string
		allowed bool
	}
	var got []decision
	f.engine.SetDecisionHook(func(action string, allowed bool) {
		got = append(got, decision{action, allowed})
	})

	issue := f.newIssue(f.admin)
	require.NoError(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionRead))
	require.ErrorIs(t, f.engine.Authorize(ctx, f.member, issue, authz.ActionDelete), domerrors.ErrForbidden)
	require.ErrorIs(t, f.engine.AuthorizeManage(ctx, f.outside, f.project.ID), domerrors.ErrNotFound)

	require.Equal(t, []decision{
		{"read", true},
		{"delete", false},
		{"manage", false},
	}, got)
}

func TestActionString(t *testing.T) {
	cases := map[authz.Action]string{
		authz.ActionRead:        "read",
		authz.ActionCreateChild: "create-child",
		authz.ActionUpdate:      "update",
		authz.ActionDelete:      "delete",
		authz.Action(99):        "unknown",
	}
	for action, want := range cases {
		if got := action.String(); got != want {
			t.Errorf("Action(%d).String() = %q, want %q", int(action), got, want)
		}
	}
}

func TestAuthorizePropagatesStorageErrors(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")
	engine := authz.NewEngine(failingProjects{err: boom}, f.store.Contributors())
	err := engine.Authorize(context.Background(), f.author, f.project, authz.ActionRead)
	require.ErrorIs(t, err, boom)
}

type failingProjects struct {
	err error
}

func (f failingProjects) Create(context.Context, *domain.Project) error { return f.err }
func (f failingProjects) GetByID(context.Context, domain.ProjectID) (*domain.Project, error) {
	return nil, f.err
}
func (f failingProjects) ListForUser(context.Context, domain.UserID) ([]*domain.Project, error) {
	return nil, f.err
}
func (f failingProjects) Update(context.Context, *domain.Project) error  { return f.err }
func (f failingProjects) Delete(context.Context, domain.ProjectID) error { return f.err }
