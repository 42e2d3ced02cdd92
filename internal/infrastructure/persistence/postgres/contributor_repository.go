package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dastfox/softdesk/internal/application/ports"
	"github.com/dastfox/softdesk/internal/domain"
	domerrors "github.com/dastfox/softdesk/internal/domain/errors"
)

const (
	selectContributorSQL = `SELECT id, user_id, project_id, permission, role, created_at
		FROM contributors WHERE user_id = $1 AND project_id = $2`
	selectContributorForUpdateSQL = selectContributorSQL + ` FOR UPDATE`
	selectContributorsByProjectSQL = `SELECT id, user_id, project_id, permission, role, created_at
		FROM contributors WHERE project_id = $1 ORDER BY created_at, user_id`
	insertContributorSQL = `INSERT INTO contributors (id, user_id, project_id, permission, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	updateContributorSQL = `UPDATE contributors SET permission = $2, role = $3 WHERE id = $1`
	deleteContributorSQL = `DELETE FROM contributors WHERE user_id = $1 AND project_id = $2`
)

// ContributorRepository is the membership store. A unique index on
// (user_id, project_id) backs the one-record-per-member invariant.
type ContributorRepository struct {
	pool *pgxpool.Pool
}

// NewContributorRepository builds the repository.
func NewContributorRepository(pool *pgxpool.Pool) *ContributorRepository {
	return &ContributorRepository{pool: pool}
}

func (r *ContributorRepository) Find(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) (*domain.Contributor, error) {
	c, err := scanContributor(r.pool.QueryRow(ctx, selectContributorSQL, userID.UUID, projectID.UUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *ContributorRepository) ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.Contributor, error) {
	rows, err := r.pool.Query(ctx, selectContributorsByProjectSQL, projectID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Contributor
	for rows.Next() {
		c, err := scanContributor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Upsert runs the check-then-act in one transaction. The existing row is
// locked FOR UPDATE; a losing concurrent insert hits the unique index and
// surfaces as ErrDuplicateContributor instead of a second row.
func (r *ContributorRepository) Upsert(ctx context.Context, c *domain.Contributor) (ports.UpsertOutcome, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	existing, err := scanContributor(tx.QueryRow(ctx, selectContributorForUpdateSQL, c.UserID.UUID, c.ProjectID.UUID))
	switch {
	case err == nil:
		if existing.Permission == c.Permission {
			return 0, domerrors.ErrDuplicateContributor
		}
		if _, err := tx.Exec(ctx, updateContributorSQL, existing.ID.UUID, string(c.Permission), c.Role); err != nil {
			return 0, err
		}
		existing.Permission = c.Permission
		existing.Role = c.Role
		*c = *existing
		if err := tx.Commit(ctx); err != nil {
			return 0, err
		}
		return ports.UpsertUpdated, nil
	case errors.Is(err, pgx.ErrNoRows):
		if c.ID.UUID == (uuid.UUID{}) {
			c.ID = domain.NewContributorID(uuid.New())
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		_, err := tx.Exec(ctx, insertContributorSQL,
			c.ID.UUID, c.UserID.UUID, c.ProjectID.UUID, string(c.Permission), c.Role, c.CreatedAt)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domerrors.ErrDuplicateContributor
		}
		if err != nil {
			return 0, err
		}
		if err := tx.Commit(ctx); err != nil {
			return 0, err
		}
		return ports.UpsertCreated, nil
	default:
		return 0, err
	}
}

func (r *ContributorRepository) Delete(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) error {
	tag, err := r.pool.Exec(ctx, deleteContributorSQL, userID.UUID, projectID.UUID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func scanContributor(row pgx.Row) (*domain.Contributor, error) {
	var c domain.Contributor
	var permission string
	err := row.Scan(&c.ID.UUID, &c.UserID.UUID, &c.ProjectID.UUID, &permission, &c.Role, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Permission = domain.Permission(permission)
	return &c, nil
}

var _ ports.ContributorRepository = (*ContributorRepository)(nil)
