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
	insertProjectSQL = `INSERT INTO projects (id, title, description, type, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	selectProjectSQL = `SELECT id, title, description, type, author_id, created_at, updated_at
		FROM projects WHERE id = $1`
	// Authored plus contributed, deduplicated by the union, stable by id.
	selectProjectsForUserSQL = `SELECT DISTINCT p.id, p.title, p.description, p.type, p.author_id, p.created_at, p.updated_at
		FROM projects p
		LEFT JOIN contributors c ON c.project_id = p.id
		WHERE p.author_id = $1 OR c.user_id = $1
		ORDER BY p.id`
	updateProjectSQL = `UPDATE projects SET title = $2, description = $3, type = $4, updated_at = $5 WHERE id = $1`
	deleteProjectSQL = `DELETE FROM projects WHERE id = $1`
)

// ProjectRepository persists projects. Contributors, issues and comments
// hang off projects with ON DELETE CASCADE, so Delete removes the whole
// subtree.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository builds the repository.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	_, err := r.pool.Exec(ctx, insertProjectSQL,
		project.ID.UUID, project.Title, project.Description, string(project.Type),
		project.AuthorID.UUID, project.CreatedAt, project.UpdatedAt)
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx, selectProjectSQL, id.UUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *ProjectRepository) ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx, selectProjectsForUserSQL, userID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	tag, err := r.pool.Exec(ctx, updateProjectSQL,
		project.ID.UUID, project.Title, project.Description, string(project.Type), project.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id domain.ProjectID) error {
	tag, err := r.pool.Exec(ctx, deleteProjectSQL, id.UUID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var projectType string
	err := row.Scan(&p.ID.UUID, &p.Title, &p.Description, &projectType, &p.AuthorID.UUID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Type = domain.ProjectType(projectType)
	return &p, nil
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
