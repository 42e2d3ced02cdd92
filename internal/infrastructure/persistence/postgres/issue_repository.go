package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

const (
	insertIssueSQL = `INSERT INTO issues (id, project_id, title, description, tag, priority, status, author_id, assignee_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	selectIssueSQL = `SELECT id, project_id, title, description, tag, priority, status, author_id, assignee_id, created_at
		FROM issues WHERE id = $1`
	selectIssuesByProjectSQL = `SELECT id, project_id, title, description, tag, priority, status, author_id, assignee_id, created_at
		FROM issues WHERE project_id = $1 ORDER BY created_at, id`
	updateIssueSQL = `UPDATE issues SET title = $2, description = $3, tag = $4, priority = $5, status = $6, assignee_id = $7
		WHERE id = $1`
	deleteIssueSQL = `DELETE FROM issues WHERE id = $1`
)

// IssueRepository persists issues. created_at is written once at insert and
// never updated.
type IssueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository builds the repository.
func NewIssueRepository(pool *pgxpool.Pool) *IssueRepository {
	return &IssueRepository{pool: pool}
}

func (r *IssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	_, err := r.pool.Exec(ctx, insertIssueSQL,
		issue.ID.UUID, issue.ProjectID.UUID, issue.Title, issue.Description,
		string(issue.Tag), string(issue.Priority), string(issue.Status),
		issue.AuthorID.UUID, issue.AssigneeID.UUID, issue.CreatedAt)
	return err
}

func (r *IssueRepository) GetByID(ctx context.Context, id domain.IssueID) (*domain.Issue, error) {
	i, err := scanIssue(r.pool.QueryRow(ctx, selectIssueSQL, id.UUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return i, err
}

func (r *IssueRepository) ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Issue, error) {
	rows, err := r.pool.Query(ctx, selectIssuesByProjectSQL, projectID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Issue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *IssueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	tag, err := r.pool.Exec(ctx, updateIssueSQL,
		issue.ID.UUID, issue.Title, issue.Description,
		string(issue.Tag), string(issue.Priority), string(issue.Status), issue.AssigneeID.UUID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func (r *IssueRepository) Delete(ctx context.Context, id domain.IssueID) error {
	tag, err := r.pool.Exec(ctx, deleteIssueSQL, id.UUID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func scanIssue(row pgx.Row) (*domain.Issue, error) {
	var i domain.Issue
	var tag, priority, status string
	err := row.Scan(&i.ID.UUID, &i.ProjectID.UUID, &i.Title, &i.Description,
		&tag, &priority, &status, &i.AuthorID.UUID, &i.AssigneeID.UUID, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	i.Tag = domain.IssueTag(tag)
	i.Priority = domain.IssuePriority(priority)
	i.Status = domain.IssueStatus(status)
	return &i, nil
}

var _ ports.IssueRepository = (*IssueRepository)(nil)
