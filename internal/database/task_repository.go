package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db *sql.DB
}

const taskColumns = `id, project_id, name, assignee, status, due_date, position`

// Create inserts a task under a freshly generated id
func (r *TaskRepo) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Name, t.Assignee, string(t.Status), t.DueDate, nullablePosition(t.Position),
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to insert task '%s': %w", t.Name, err)
	}
	return t, nil
}

// GetByID retrieves a task by its ID
func (r *TaskRepo) GetByID(ctx context.Context, id string) (models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return models.Task{}, notFound(err, "task", id)
	}
	return t, nil
}

// GetAll retrieves every task in insertion order
func (r *TaskRepo) GetAll(ctx context.Context) ([]models.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY rowid`)
}

// GetByProject retrieves the tasks referencing projectID
func (r *TaskRepo) GetByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY rowid`, projectID)
}

// Update overwrites every column of an existing task
func (r *TaskRepo) Update(ctx context.Context, t models.Task) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET project_id = ?, name = ?, assignee = ?, status = ?, due_date = ?, position = ? WHERE id = ?`,
		t.ProjectID, t.Name, t.Assignee, string(t.Status), t.DueDate, nullablePosition(t.Position), t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", t.ID, err)
	}
	return checkAffected(result, "task", t.ID)
}

// Delete removes a task
func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return checkAffected(result, "task", id)
}

func (r *TaskRepo) query(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer closeRows(rows)

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var status string
	var position sql.NullFloat64
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Assignee, &status, &t.DueDate, &position); err != nil {
		return models.Task{}, err
	}
	t.Status = models.TaskStatus(status)
	if position.Valid {
		v := position.Float64
		t.Position = &v
	}
	return t, nil
}

func nullablePosition(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
