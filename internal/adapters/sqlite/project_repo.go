package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	q dbtx
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO projects (id, name, category, manager_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		project.ID, project.Name, project.Category, project.ManagerID, project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	project := &secondary.ProjectRecord{}
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, category, manager_id, created_at FROM projects WHERE id = ?`, id,
	).Scan(&project.ID, &project.Name, &project.Category, &project.ManagerID, &project.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: project %s", workflow.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// List retrieves all projects.
func (r *ProjectRepository) List(ctx context.Context) ([]*secondary.ProjectRecord, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, category, manager_id, created_at FROM projects ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*secondary.ProjectRecord
	for rows.Next() {
		project := &secondary.ProjectRecord{}
		if err := rows.Scan(&project.ID, &project.Name, &project.Category, &project.ManagerID, &project.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}
