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
	insertCommentSQL = `INSERT INTO comments (id, project_id, issue_id, description, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	selectCommentSQL = `SELECT id, project_id, issue_id, description, author_id, created_at
		FROM comments WHERE id = $1`
	selectCommentsByIssueSQL = `SELECT id, project_id, issue_id, description, author_id, created_at
		FROM comments WHERE issue_id = $1 ORDER BY created_at, id`
	updateCommentSQL = `UPDATE comments SET description = $2 WHERE id = $1`
	deleteCommentSQL = `DELETE FROM comments WHERE id = $1`
)

// CommentRepository persists comments.
type CommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds the repository.
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	_, err := r.pool.Exec(ctx, insertCommentSQL,
		comment.ID.UUID, comment.ProjectID.UUID, comment.IssueID.UUID,
		comment.Description, comment.AuthorID.UUID, comment.CreatedAt)
	return err
}

func (r *CommentRepository) GetByID(ctx context.Context, id domain.CommentID) (*domain.Comment, error) {
	c, err := scanComment(r.pool.QueryRow(ctx, selectCommentSQL, id.UUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CommentRepository) ListByIssue(ctx context.Context, issueID domain.IssueID) ([]*domain.Comment, error) {
	rows, err := r.pool.Query(ctx, selectCommentsByIssueSQL, issueID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	tag, err := r.pool.Exec(ctx, updateCommentSQL, comment.ID.UUID, comment.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id domain.CommentID) error {
	tag, err := r.pool.Exec(ctx, deleteCommentSQL, id.UUID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID.UUID, &c.ProjectID.UUID, &c.IssueID.UUID, &c.Description, &c.AuthorID.UUID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

var _ ports.CommentRepository = (*CommentRepository)(nil)
