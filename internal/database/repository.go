package database

import "database/sql"

// Repository provides a unified interface to all data operations.
// It composes the per-entity repositories by name so their identically
// named methods do not collide.
type Repository struct {
	Projects *ProjectRepo
	Tasks    *TaskRepo
	Workers  *WorkerRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Projects: &ProjectRepo{db: db},
		Tasks:    &TaskRepo{db: db},
		Workers:  &WorkerRepo{db: db},
	}
}
