package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// WorkerRepo handles all worker-related database operations.
// Fields beyond name and role are stored as a JSON object in the extra column.
type WorkerRepo struct {
	db *sql.DB
}

const workerColumns = `id, name, role, extra`

// Create inserts a worker under a freshly generated id
func (r *WorkerRepo) Create(ctx context.Context, w models.Worker) (models.Worker, error) {
	w.ID = uuid.NewString()

	extra, err := encodeExtra(w.Extra)
	if err != nil {
		return models.Worker{}, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO workers (`+workerColumns+`) VALUES (?, ?, ?, ?)`,
		w.ID, w.Name, w.Role, extra,
	)
	if err != nil {
		return models.Worker{}, fmt.Errorf("failed to insert worker '%s': %w", w.Name, err)
	}
	return w, nil
}

// GetByID retrieves a worker by its ID
func (r *WorkerRepo) GetByID(ctx context.Context, id string) (models.Worker, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = ?`, id)
	w, err := scanWorker(row)
	if err != nil {
		return models.Worker{}, notFound(err, "worker", id)
	}
	return w, nil
}

// GetAll retrieves every worker in insertion order
func (r *WorkerRepo) GetAll(ctx context.Context) ([]models.Worker, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+workerColumns+` FROM workers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all workers: %w", err)
	}
	defer closeRows(rows)

	workers := []models.Worker{}
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// Update overwrites an existing worker including its extra fields
func (r *WorkerRepo) Update(ctx context.Context, w models.Worker) error {
	extra, err := encodeExtra(w.Extra)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE workers SET name = ?, role = ?, extra = ? WHERE id = ?`,
		w.Name, w.Role, extra, w.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update worker %s: %w", w.ID, err)
	}
	return checkAffected(result, "worker", w.ID)
}

// Delete removes a worker
func (r *WorkerRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete worker %s: %w", id, err)
	}
	return checkAffected(result, "worker", id)
}

func scanWorker(row rowScanner) (models.Worker, error) {
	var w models.Worker
	var extra string
	if err := row.Scan(&w.ID, &w.Name, &w.Role, &extra); err != nil {
		return models.Worker{}, err
	}
	if extra != "" && extra != "{}" {
		if err := json.Unmarshal([]byte(extra), &w.Extra); err != nil {
			return models.Worker{}, fmt.Errorf("failed to decode extra fields of worker %s: %w", w.ID, err)
		}
	}
	return w, nil
}

func encodeExtra(extra map[string]json.RawMessage) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("failed to encode worker extra fields: %w", err)
	}
	return string(data), nil
}
