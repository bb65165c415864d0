package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/project"
	"github.com/thenoetrevino/taskdeck/internal/services/task"
	"github.com/thenoetrevino/taskdeck/internal/services/worker"
	"github.com/thenoetrevino/taskdeck/internal/store"
)

// TestStoresAgainstServer drives the stores through the real client and server
func TestStoresAgainstServer(t *testing.T) {
	ctx := context.Background()
	srv := setupTestServer(t)

	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	c := cache.New(cache.NewMemoryBackend())

	tasks := store.NewTaskStore(task.NewService(client), c)
	projects := store.NewProjectStore(project.NewService(client), c, tasks)
	workers := store.NewWorkerStore(worker.NewService(client), c)

	projects.FetchAll(ctx)
	tasks.FetchAll(ctx)
	require.Empty(t, projects.Error())
	require.Empty(t, projects.Projects())

	p1, err := projects.Add(ctx, project.CreateProjectRequest{Name: "Launch"})
	require.NoError(t, err)
	p2, err := projects.Add(ctx, project.CreateProjectRequest{Name: "Docs"})
	require.NoError(t, err)

	for _, req := range []task.CreateTaskRequest{
		{ProjectID: p1.ID, Name: "t1"},
		{ProjectID: p1.ID, Name: "t2"},
		{ProjectID: p2.ID, Name: "t3"},
	} {
		_, err := tasks.Add(ctx, req)
		require.NoError(t, err)
	}

	assert.Equal(t, map[string]int{p1.ID: 2, p2.ID: 1}, tasks.CountByProject())
	withCount := projects.ProjectsWithCount()
	require.Len(t, withCount, 2)
	assert.Equal(t, 2, withCount[0].TasksCount)
	assert.Equal(t, 1, withCount[1].TasksCount)

	// Update replaces the entry with the server's merged entity
	done := models.TaskDone
	first := tasks.TasksByProject(p1.ID).Tasks()[0]
	updated, err := tasks.Update(ctx, first.ID, task.UpdateTaskRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, first.Name, updated.Name)
	got, _ := tasks.GetTaskByID(first.ID)
	assert.Equal(t, models.TaskDone, got.Status)

	// Deleting a missing id fails remotely and leaves the store alone
	err = tasks.Delete(ctx, "does-not-exist")
	assert.True(t, api.IsNotFound(err))
	assert.Len(t, tasks.Tasks(), 3)

	// A fresh store on the same cache never hits the remote
	again := store.NewProjectStore(project.NewService(client), c, tasks)
	srv.Close()
	again.FetchAll(ctx)
	assert.Empty(t, again.Error())
	assert.Equal(t, projects.Projects(), again.Projects())

	_, err = workers.Add(ctx, worker.CreateWorkerRequest{Name: "Ada"})
	assert.Error(t, err, "server is gone")
}

func TestSyncProjectAgainstServer(t *testing.T) {
	ctx := context.Background()
	srv := setupTestServer(t)

	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	svc := task.NewService(client)

	_, err = svc.Create(ctx, task.CreateTaskRequest{ProjectID: "p1", Name: "server side"})
	require.NoError(t, err)

	c := cache.New(cache.NewMemoryBackend())
	require.NoError(t, cache.Save(ctx, c, cache.KeyTasks, []models.Task{
		{ID: "local", ProjectID: "p2", Name: "keep"},
	}))

	tasks := store.NewTaskStore(svc, c)
	tasks.FetchAll(ctx)
	require.NoError(t, tasks.SyncProject(ctx, "p1"))

	assert.Equal(t, map[string]int{"p1": 1, "p2": 1}, tasks.CountByProject())
}
