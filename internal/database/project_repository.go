package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db *sql.DB
}

const projectColumns = `id, name, description, status, created_at`

// Create inserts a project under a freshly generated id and returns the stored row
func (r *ProjectRepo) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = uuid.NewString()
	p.TasksCount = 0

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, string(p.Status), p.CreatedAt,
	)
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to insert project '%s': %w", p.Name, err)
	}
	return p, nil
}

// GetByID retrieves a project by its ID
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (models.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return models.Project{}, notFound(err, "project", id)
	}
	return p, nil
}

// GetAll retrieves all projects in insertion order
func (r *ProjectRepo) GetAll(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all projects: %w", err)
	}
	defer closeRows(rows)

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update overwrites every column of an existing project
func (r *ProjectRepo) Update(ctx context.Context, p models.Project) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, status = ?, created_at = ? WHERE id = ?`,
		p.Name, p.Description, string(p.Status), p.CreatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", p.ID, err)
	}
	return checkAffected(result, "project", p.ID)
}

// Delete removes a project. Tasks referencing it are left alone.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return checkAffected(result, "project", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (models.Project, error) {
	var p models.Project
	var status string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &status, &p.CreatedAt); err != nil {
		return models.Project{}, err
	}
	p.Status = models.ProjectStatus(status)
	return p, nil
}
