// Package testutil provides shared fixtures for tests that need a running API.
package testutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/thenoetrevino/taskdeck/internal/database"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/server"
)

// NewAPIServer starts the dev API server over a fresh in-memory database.
// The repository is returned so tests can seed rows directly.
func NewAPIServer(t *testing.T) (*httptest.Server, *database.Repository) {
	t.Helper()

	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := database.NewRepository(db)
	srv := httptest.NewServer(server.New(":0", repo).Handler())
	t.Cleanup(srv.Close)

	return srv, repo
}

// CreateTestProject inserts an active project and returns its id
func CreateTestProject(t *testing.T, repo *database.Repository, name string) string {
	t.Helper()
	p, err := repo.Projects.Create(context.Background(), models.Project{
		Name:      name,
		Status:    models.ProjectActive,
		CreatedAt: "2024-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return p.ID
}

// CreateTestTask inserts a To Do task and returns its id
func CreateTestTask(t *testing.T, repo *database.Repository, projectID, name string) string {
	t.Helper()
	task, err := repo.Tasks.Create(context.Background(), models.Task{
		ProjectID: projectID,
		Name:      name,
		Status:    models.TaskToDo,
	})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task.ID
}

// CreateTestWorker inserts a worker and returns its id
func CreateTestWorker(t *testing.T, repo *database.Repository, name, role string) string {
	t.Helper()
	w, err := repo.Workers.Create(context.Background(), models.Worker{Name: name, Role: role})
	if err != nil {
		t.Fatalf("Failed to create test worker: %v", err)
	}
	return w.ID
}
