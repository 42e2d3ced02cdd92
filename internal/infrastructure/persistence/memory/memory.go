// Package memory provides in-memory implementations of the persistence
// ports. They back the use-case and handler tests; semantics mirror the
// postgres implementations, including cascade delete and the contributor
// uniqueness rule.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

// Store holds every entity behind one mutex and exposes the repository
// ports as views.
type Store struct {
	mu           sync.Mutex
	users        map[domain.UserID]*domain.User
	projects     map[domain.ProjectID]*domain.Project
	contributors map[domain.ContributorID]*domain.Contributor
	issues       map[domain.IssueID]*domain.Issue
	comments     map[domain.CommentID]*domain.Comment
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[domain.UserID]*domain.User),
		projects:     make(map[domain.ProjectID]*domain.Project),
		contributors: make(map[domain.ContributorID]*domain.Contributor),
		issues:       make(map[domain.IssueID]*domain.Issue),
		comments:     make(map[domain.CommentID]*domain.Comment),
	}
}

// Users returns the user repository view.
func (s *Store) Users() ports.UserRepository { return (*userRepo)(s) }

// Projects returns the project repository view.
func (s *Store) Projects() ports.ProjectRepository { return (*projectRepo)(s) }

// Contributors returns the contributor repository view.
func (s *Store) Contributors() ports.ContributorRepository { return (*contributorRepo)(s) }

// Issues returns the issue repository view.
func (s *Store) Issues() ports.IssueRepository { return (*issueRepo)(s) }

// Comments returns the comment repository view.
func (s *Store) Comments() ports.CommentRepository { return (*commentRepo)(s) }

type userRepo Store

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domerrors.ErrUserExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type projectRepo Store

func (r *projectRepo) Create(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *projectRepo) GetByID(_ context.Context, id domain.ProjectID) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *projectRepo) ListForUser(_ context.Context, userID domain.UserID) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[domain.ProjectID]bool)
	var out []*domain.Project
	add := func(p *domain.Project) {
		if !seen[p.ID] {
			seen[p.ID] = true
			cp := *p
			out = append(out, &cp)
		}
	}
	for _, p := range r.projects {
		if p.AuthorID == userID {
			add(p)
		}
	}
	for _, c := range r.contributors {
		if c.UserID == userID {
			if p, ok := r.projects[c.ProjectID]; ok {
				add(p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *projectRepo) Update(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[project.ID]; !ok {
		return domerrors.ErrNotFound
	}
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *projectRepo) Delete(_ context.Context, id domain.ProjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return domerrors.ErrNotFound
	}
	delete(r.projects, id)
	for cid, c := range r.contributors {
		if c.ProjectID == id {
			delete(r.contributors, cid)
		}
	}
	for iid, issue := range r.issues {
		if issue.ProjectID == id {
			delete(r.issues, iid)
			for cid, cm := range r.comments {
				if cm.IssueID == iid {
					delete(r.comments, cid)
				}
			}
		}
	}
	return nil
}

type contributorRepo Store

func (r *contributorRepo) Find(_ context.Context, userID domain.UserID, projectID domain.ProjectID) (*domain.Contributor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c := r.find(userID, projectID); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *contributorRepo) find(userID domain.UserID, projectID domain.ProjectID) *domain.Contributor {
	for _, c := range r.contributors {
		if c.UserID == userID && c.ProjectID == projectID {
			return c
		}
	}
	return nil
}

func (r *contributorRepo) ListByProject(_ context.Context, projectID domain.ProjectID) ([]*domain.Contributor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Contributor
	for _, c := range r.contributors {
		if c.ProjectID == projectID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].UserID.String() < out[j].UserID.String()
	})
	return out, nil
}

func (r *contributorRepo) Upsert(_ context.Context, c *domain.Contributor) (ports.UpsertOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.find(c.UserID, c.ProjectID); existing != nil {
		if existing.Permission == c.Permission {
			return 0, domerrors.ErrDuplicateContributor
		}
		existing.Permission = c.Permission
		existing.Role = c.Role
		*c = *existing
		return ports.UpsertUpdated, nil
	}
	if c.ID.UUID == (uuid.UUID{}) {
		c.ID = domain.NewContributorID(uuid.New())
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	cp := *c
	r.contributors[c.ID] = &cp
	return ports.UpsertCreated, nil
}

func (r *contributorRepo) Delete(_ context.Context, userID domain.UserID, projectID domain.ProjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.find(userID, projectID)
	if existing == nil {
		return domerrors.ErrNotFound
	}
	delete(r.contributors, existing.ID)
	return nil
}

type issueRepo Store

func (r *issueRepo) Create(_ context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *issue
	r.issues[issue.ID] = &cp
	return nil
}

func (r *issueRepo) GetByID(_ context.Context, id domain.IssueID) (*domain.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.issues[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *issueRepo) ListByProject(_ context.Context, projectID domain.ProjectID) ([]*domain.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Issue
	for _, i := range r.issues {
		if i.ProjectID == projectID {
			cp := *i
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *issueRepo) Update(_ context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.issues[issue.ID]; !ok {
		return domerrors.ErrNotFound
	}
	cp := *issue
	r.issues[issue.ID] = &cp
	return nil
}

func (r *issueRepo) Delete(_ context.Context, id domain.IssueID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.issues[id]; !ok {
		return domerrors.ErrNotFound
	}
	delete(r.issues, id)
	for cid, cm := range r.comments {
		if cm.IssueID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

type commentRepo Store

func (r *commentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *commentRepo) GetByID(_ context.Context, id domain.CommentID) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *commentRepo) ListByIssue(_ context.Context, issueID domain.IssueID) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.IssueID == issueID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *commentRepo) Update(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[comment.ID]; !ok {
		return domerrors.ErrNotFound
	}
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *commentRepo) Delete(_ context.Context, id domain.CommentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return domerrors.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}
