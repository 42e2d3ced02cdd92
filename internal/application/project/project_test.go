package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/project"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
	"github.com/dastfox/softdesk/internal/infrastructure/persistence/memory"
)

type env struct {
	store    *memory.Store
	create   *project.CreateProject
	list     *project.ListProjects
	get      *project.GetProject
	update   *project.UpdateProject
	delete   *project.DeleteProject
	resolver *authz.Resolver
	engine   *authz.Engine
}

func newEnv() *env {
	store := memory.NewStore()
	resolver := authz.NewResolver(store.Projects(), store.Issues(), store.Comments())
	engine := authz.NewEngine(store.Projects(), store.Contributors())
	return &env{
		store:    store,
		create:   project.NewCreateProject(store.Projects()),
		list:     project.NewListProjects(store.Projects()),
		get:      project.NewGetProject(resolver, engine),
		update:   project.NewUpdateProject(store.Projects(), resolver, engine),
		delete:   project.NewDeleteProject(store.Projects(), resolver, engine),
		resolver: resolver,
		engine:   engine,
	}
}

func (e *env) seedProject(t *testing.T, author domain.UserID) *domain.Project {
	t.Helper()
	p, err := e.create.Execute(context.Background(), project.CreateProjectInput{
		Author: author,
		Title:  "seed",
		Type:   domain.ProjectTypeBackend,
	})
	require.NoError(t, err)
	return p
}

func (e *env) addContributor(t *testing.T, user domain.UserID, projectID domain.ProjectID, perm domain.Permission) {
	t.Helper()
	_, err := e.store.Contributors().Upsert(context.Background(), &domain.Contributor{
		ID:         domain.NewContributorID(uuid.New()),
		UserID:     user,
		ProjectID:  projectID,
		Permission: perm,
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)
}

func TestCreateProject(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	author := domain.NewUserID(uuid.New())

	p, err := e.create.Execute(ctx, project.CreateProjectInput{
		Author:      author,
		Title:       "mobile app",
		Description: "ios client",
		Type:        domain.ProjectTypeIOS,
	})
	require.NoError(t, err)
	require.Equal(t, author, p.AuthorID)
	require.False(t, p.CreatedAt.IsZero())

	// The author needs no contributor record to act on the project.
	got, err := e.get.Execute(ctx, author, p.ID)
	require.NoError(t, err)
	require.Equal(t, "mobile app", got.Title)

	members, err := e.store.Contributors().ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestCreateProjectValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	author := domain.NewUserID(uuid.New())

	_, err := e.create.Execute(ctx, project.CreateProjectInput{Author: author, Title: "", Type: domain.ProjectTypeIOS})
	require.ErrorIs(t, err, domerrors.ErrValidation)

	_, err = e.create.Execute(ctx, project.CreateProjectInput{Author: author, Title: "x", Type: "desktop"})
	require.ErrorIs(t, err, domerrors.ErrValidation)
}

func TestListProjectsUnionDeduplicated(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	alice := domain.NewUserID(uuid.New())
	bob := domain.NewUserID(uuid.New())

	authored := e.seedProject(t, alice)
	shared := e.seedProject(t, bob)
	e.seedProject(t, bob) // invisible to alice
	e.addContributor(t, alice, shared.ID, domain.PermissionUser)
	// Alice contributing to her own project must not duplicate it.
	e.addContributor(t, alice, authored.ID, domain.PermissionAdmin)

	got, err := e.list.Execute(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 2)
	ids := map[domain.ProjectID]bool{got[0].ID: true, got[1].ID: true}
	require.True(t, ids[authored.ID])
	require.True(t, ids[shared.ID])
}

func TestListProjectsEmptyForUnknownUser(t *testing.T) {
	e := newEnv()
	got, err := e.list.Execute(context.Background(), domain.NewUserID(uuid.New()))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGetProjectScoping(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	author := domain.NewUserID(uuid.New())
	member := domain.NewUserID(uuid.New())
	outsider := domain.NewUserID(uuid.New())

	p := e.seedProject(t, author)
	e.addContributor(t, member, p.ID, domain.PermissionUser)

	_, err := e.get.Execute(ctx, member, p.ID)
	require.NoError(t, err)

	_, err = e.get.Execute(ctx, outsider, p.ID)
	require.ErrorIs(t, err, domerrors.ErrNotFound)

	_, err = e.get.Execute(ctx, author, domain.NewProjectID(uuid.New()))
	require.ErrorIs(t, err, domerrors.ErrNotFound)
}

func TestUpdateProject(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	author := domain.NewUserID(uuid.New())
	admin := domain.NewUserID(uuid.New())
	member := domain.NewUserID(uuid.New())

	p := e.seedProject(t, author)
	e.addContributor(t, admin, p.ID, domain.PermissionAdmin)
	e.addContributor(t, member, p.ID, domain.PermissionUser)

	got, err := e.update.Execute(ctx, admin, project.UpdateProjectInput{
		ID:          p.ID,
		Title:       "renamed",
		Description: "new scope",
		Type:        domain.ProjectTypeFrontend,
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Title)
	require.Equal(t, domain.ProjectTypeFrontend, got.Type)
	require.Equal(t, author, got.AuthorID)

	_, err = e.update.Execute(ctx, member, project.UpdateProjectInput{ID: p.ID, Title: "nope", Type: domain.ProjectTypeBackend})
	require.ErrorIs(t, err, domerrors.ErrForbidden)

	_, err = e.update.Execute(ctx, author, project.UpdateProjectInput{ID: p.ID, Title: "", Type: domain.ProjectTypeBackend})
	require.ErrorIs(t, err, domerrors.ErrValidation)
}

func TestDeleteProjectCascades(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	author := domain.NewUserID(uuid.New())
	member := domain.NewUserID(uuid.New())

	p := e.seedProject(t, author)
	e.addContributor(t, member, p.ID, domain.PermissionUser)

	issue := &domain.Issue{
		ID:        domain.NewIssueID(uuid.New()),
		ProjectID: p.ID,
		Title:     "leak",
		Tag:       domain.TagBug,
		Priority:  domain.PriorityHigh,
		Status:    domain.StatusOpen,
		AuthorID:  member,
	}
	require.NoError(t, e.store.Issues().Create(ctx, issue))
	comment := &domain.Comment{
		ID:        domain.NewCommentID(uuid.New()),
		ProjectID: p.ID,
		IssueID:   issue.ID,
		AuthorID:  member,
	}
	require.NoError(t, e.store.Comments().Create(ctx, comment))

	require.ErrorIs(t, e.delete.Execute(ctx, member, p.ID), domerrors.ErrForbidden)
	require.NoError(t, e.delete.Execute(ctx, author, p.ID))

	gotIssue, err := e.store.Issues().GetByID(ctx, issue.ID)
	require.NoError(t, err)
	require.Nil(t, gotIssue)
	gotComment, err := e.store.Comments().GetByID(ctx, comment.ID)
	require.NoError(t, err)
	require.Nil(t, gotComment)
	members, err := e.store.Contributors().ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, members)

	require.ErrorIs(t, e.delete.Execute(ctx, author, p.ID), domerrors.ErrNotFound)
}
