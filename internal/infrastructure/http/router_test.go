package http_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dastfox/softdesk/internal/application/auth"
	"github.com/dastfox/softdesk/internal/application/authz"
	"github.com/dastfox/softdesk/internal/application/comment"
	"github.com/dastfox/softdesk/internal/application/contributor"
	"github.com/dastfox/softdesk/internal/application/issue"
	"github.com/dastfox/softdesk/internal/application/project"
	infraauth "github.com/dastfox/softdesk/internal/infrastructure/auth"
	httprouter "github.com/dastfox/softdesk/internal/infrastructure/http"
	"github.com/dastfox/softdesk/internal/infrastructure/http/handlers"
	"github.com/dastfox/softdesk/internal/infrastructure/http/middleware"
	"github.com/dastfox/softdesk/internal/infrastructure/persistence/memory"
	"github.com/dastfox/softdesk/internal/infrastructure/security"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	resolver := authz.NewResolver(store.Projects(), store.Issues(), store.Comments())
	engine := authz.NewEngine(store.Projects(), store.Contributors())

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	issuer := infraauth.NewTokenIssuer(key, "softdesk", "softdesk")

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler: handlers.NewAuthHandler(
			auth.NewSignup(store.Users(), hasher, issuer, 3600),
			auth.NewLogin(store.Users(), hasher, issuer, 3600),
			zerolog.Nop(),
		),
		UsersHandler: handlers.NewUsersHandler(store.Users()),
		ProjectsHandler: handlers.NewProjectsHandler(
			project.NewCreateProject(store.Projects()),
			project.NewListProjects(store.Projects()),
			project.NewGetProject(resolver, engine),
			project.NewUpdateProject(store.Projects(), resolver, engine),
			project.NewDeleteProject(store.Projects(), resolver, engine),
		),
		ContributorsHandler: handlers.NewContributorsHandler(
			contributor.NewUpsertContributor(store.Contributors(), store.Users(), resolver, engine),
			contributor.NewListContributors(store.Contributors(), resolver, engine),
			contributor.NewGetContributor(store.Contributors(), resolver, engine),
			contributor.NewRemoveContributor(store.Contributors(), resolver, engine),
		),
		IssuesHandler: handlers.NewIssuesHandler(
			issue.NewCreateIssue(store.Issues(), resolver, engine),
			issue.NewListIssues(store.Issues(), resolver, engine),
			issue.NewGetIssue(resolver, engine),
			issue.NewUpdateIssue(store.Issues(), resolver, engine),
			issue.NewDeleteIssue(store.Issues(), resolver, engine),
		),
		CommentsHandler: handlers.NewCommentsHandler(
			comment.NewCreateComment(store.Comments(), resolver, engine),
			comment.NewListComments(store.Comments(), resolver, engine),
			comment.NewGetComment(resolver, engine),
			comment.NewUpdateComment(store.Comments(), resolver, engine),
			comment.NewDeleteComment(store.Comments(), resolver, engine),
		),
		RequireJWT: middleware.NewAuthValidator(issuer).Handler,
		Log:        zerolog.Nop(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if len(raw) > 0 {
		require.NoError(c.t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func signupUser(t *testing.T, base, email string) *client {
	t.Helper()
	c := &client{t: t, base: base}
	resp, body := c.do(http.MethodPost, "/signup", map[string]string{
		"email":    email,
		"password": "longenough",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	c.token = body["access_token"].(string)
	return c
}

func TestSignupLoginAndMe(t *testing.T) {
	srv, _ := newTestServer(t)
	alice := signupUser(t, srv.URL, "alice@example.com")

	resp, body := alice.do(http.MethodGet, "/users/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alice@example.com", body["email"])

	// Duplicate signup conflicts.
	resp, _ = (&client{t: t, base: srv.URL}).do(http.MethodPost, "/signup", map[string]string{
		"email": "alice@example.com", "password": "longenough",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Short password is rejected before it reaches the use case.
	resp, _ = (&client{t: t, base: srv.URL}).do(http.MethodPost, "/signup", map[string]string{
		"email": "bob@example.com", "password": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Login round trip.
	login := &client{t: t, base: srv.URL}
	resp, body = login.do(http.MethodPost, "/login", map[string]string{
		"email": "alice@example.com", "password": "longenough",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body["access_token"])

	resp, _ = login.do(http.MethodPost, "/login", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	srv, _ := newTestServer(t)
	anon := &client{t: t, base: srv.URL}

	resp, _ := anon.do(http.MethodGet, "/projects/", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	anon.token = "garbage"
	resp, _ = anon.do(http.MethodGet, "/projects/", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProjectIssueCommentFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	alice := signupUser(t, srv.URL, "alice@example.com")
	bob := signupUser(t, srv.URL, "bob@example.com")
	carol := signupUser(t, srv.URL, "carol@example.com")

	// Alice creates a project.
	resp, body := alice.do(http.MethodPost, "/projects/", map[string]string{
		"title": "mobile app", "description": "ios client", "type": "ios",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	projectID := body["id"].(string)

	// Bob cannot see it until invited.
	resp, _ = bob.do(http.MethodGet, "/projects/"+projectID+"/", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Bob's user id comes from his own /users/me.
	_, me := bob.do(http.MethodGet, "/users/me", nil)
	bobID := me["id"].(string)

	// Alice invites Bob as a plain member.
	resp, body = alice.do(http.MethodPost, "/projects/"+projectID+"/users/", map[string]string{
		"user_id": bobID, "permission": "user",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "user", body["permission"])

	// Re-inviting with the same permission conflicts; a different
	// permission updates in place with 200.
	resp, _ = alice.do(http.MethodPost, "/projects/"+projectID+"/users/", map[string]string{
		"user_id": bobID, "permission": "user",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp, _ = alice.do(http.MethodPost, "/projects/"+projectID+"/users/", map[string]string{
		"user_id": bobID, "permission": "admin",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = alice.do(http.MethodPost, "/projects/"+projectID+"/users/", map[string]string{
		"user_id": bobID, "permission": "user",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Bob, now a member, files an issue.
	resp, body = bob.do(http.MethodPost, "/projects/"+projectID+"/issues/", map[string]string{
		"title": "crash on launch", "tag": "bug", "priority": "high", "status": "open",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	issueID := body["id"].(string)
	require.Equal(t, bobID, body["author_user_id"])
	require.Equal(t, bobID, body["assignee_user_id"])

	// Carol, an outsider, sees an empty issue list, not an error.
	resp, body = carol.do(http.MethodGet, "/projects/"+projectID+"/issues/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, body["issues"])

	// Carol cannot touch the issue directly.
	resp, _ = carol.do(http.MethodGet, "/projects/"+projectID+"/issues/"+issueID+"/", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Alice comments on Bob's issue.
	resp, body = alice.do(http.MethodPost, "/projects/"+projectID+"/issues/"+issueID+"/comments/", map[string]string{
		"description": "confirmed on 17.2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	commentID := body["id"].(string)
	require.Equal(t, projectID, body["project_id"])

	// Bob cannot edit Alice's comment.
	resp, _ = bob.do(http.MethodPut, "/projects/"+projectID+"/issues/"+issueID+"/comments/"+commentID, map[string]string{
		"description": "edited",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Bob edits his own issue.
	resp, body = bob.do(http.MethodPut, "/projects/"+projectID+"/issues/"+issueID+"/", map[string]string{
		"title": "crash on launch", "tag": "bug", "priority": "medium", "status": "in progress",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "in progress", body["status"])

	// Bob, a plain member, cannot list contributors.
	resp, _ = bob.do(http.MethodGet, "/projects/"+projectID+"/users/", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Alice removes Bob; his issue stays, his access goes.
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/projects/"+projectID+"/users/"+bobID, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+alice.token)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)

	resp, _ = bob.do(http.MethodGet, "/projects/"+projectID+"/", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Revoked author keeps self-edit of his issue.
	resp, _ = bob.do(http.MethodPut, "/projects/"+projectID+"/issues/"+issueID+"/", map[string]string{
		"title": "crash on launch", "tag": "bug", "priority": "low", "status": "closed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = alice.do(http.MethodGet, "/projects/"+projectID+"/issues/"+issueID+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "closed", body["status"])

	// Deleting the project cascades; the issue path is gone afterwards.
	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/projects/"+projectID+"/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+alice.token)
	delResp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)

	resp, _ = alice.do(http.MethodGet, "/projects/"+projectID+"/issues/"+issueID+"/", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMalformedPathIDs(t *testing.T) {
	srv, _ := newTestServer(t)
	alice := signupUser(t, srv.URL, "alice@example.com")

	resp, _ := alice.do(http.MethodGet, "/projects/not-a-uuid/", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = alice.do(http.MethodGet, fmt.Sprintf("/projects/%s/issues/not-a-uuid/", "11111111-1111-1111-1111-111111111111"), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
