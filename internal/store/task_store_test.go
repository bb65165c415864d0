package store

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/task"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "t1", ProjectID: "p1", Name: "a", Status: models.TaskToDo},
		{ID: "t2", ProjectID: "p1", Name: "b", Status: models.TaskInProgress},
		{ID: "t3", ProjectID: "p2", Name: "c", Status: models.TaskDone},
	}
}

func TestTaskStore_CountByProject(t *testing.T) {
	c, _ := newTestCache(t)
	s := NewTaskStore(&fakeTaskService{all: sampleTasks()}, c)
	s.FetchAll(context.Background())

	assert.Equal(t, map[string]int{"p1": 2, "p2": 1}, s.CountByProject())
}

func TestTaskStore_CountByProject_MatchesCollection(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		var tasks []models.Task
		n := rng.Intn(30)
		for i := 0; i < n; i++ {
			tasks = append(tasks, models.Task{
				ID:        fmt.Sprintf("t%d", i),
				ProjectID: fmt.Sprintf("p%d", rng.Intn(5)),
			})
		}

		c, _ := newTestCache(t)
		s := NewTaskStore(&fakeTaskService{all: tasks}, c)
		s.FetchAll(context.Background())

		counts := s.CountByProject()
		for _, tk := range tasks {
			want := 0
			for _, other := range tasks {
				if other.ProjectID == tk.ProjectID {
					want++
				}
			}
			assert.Equal(t, want, counts[tk.ProjectID], "round %d project %s", round, tk.ProjectID)
		}
	}
}

func TestTaskStore_CountByProject_RecomputedOnChange(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	svc := &fakeTaskService{all: sampleTasks(), createRet: models.Task{ID: "t4", ProjectID: "p2"}}
	s := NewTaskStore(svc, c)
	s.FetchAll(ctx)

	first := s.CountByProject()
	second := s.CountByProject()
	assert.Equal(t, fmt.Sprintf("%p", first), fmt.Sprintf("%p", second), "memoized while the version is unchanged")

	_, err := s.Add(ctx, task.CreateTaskRequest{ProjectID: "p2", Name: "d"})
	require.NoError(t, err)
	assert.Equal(t, 2, s.CountByProject()["p2"])

	require.NoError(t, s.Delete(ctx, "t1"))
	assert.Equal(t, 1, s.CountByProject()["p1"])
}

func TestTaskStore_TasksByProject_IsLive(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	svc := &fakeTaskService{all: sampleTasks(), createRet: models.Task{ID: "t9", ProjectID: "p1"}}
	s := NewTaskStore(svc, c)

	view := s.TasksByProject("p1")
	assert.Empty(t, view.Tasks(), "view created before fetch starts empty")

	s.FetchAll(ctx)
	assert.Len(t, view.Tasks(), 2)

	_, err := s.Add(ctx, task.CreateTaskRequest{ProjectID: "p1", Name: "new"})
	require.NoError(t, err)

	ids := []string{}
	for _, tk := range view.Tasks() {
		ids = append(ids, tk.ID)
	}
	assert.Equal(t, []string{"t1", "t2", "t9"}, ids)
	assert.Empty(t, s.TasksByProject("nope").Tasks())
}

func TestTaskStore_Update_IDReplacement(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	seedCache(t, c, cache.KeyTasks, []models.Task{
		{ID: "1", ProjectID: "p1", Name: "write", Assignee: "ada", Status: models.TaskToDo, DueDate: "2024-01-01"},
	})
	echoed := models.Task{ID: "1", ProjectID: "p1", Name: "write", Assignee: "ada", Status: models.TaskDone, DueDate: "2024-01-01"}
	s := NewTaskStore(&fakeTaskService{updateRet: echoed}, c)
	s.FetchAll(ctx)

	done := models.TaskDone
	_, err := s.Update(ctx, "1", task.UpdateTaskRequest{Status: &done})
	require.NoError(t, err)

	assert.Equal(t, []models.Task{echoed}, s.Tasks())
	assert.Equal(t, s.Tasks(), loadCache[[]models.Task](t, c, cache.KeyTasks))
}

func TestTaskStore_SyncProject(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	seedCache(t, c, cache.KeyTasks, sampleTasks())
	svc := &fakeTaskService{byProject: map[string][]models.Task{
		"p1": {{ID: "t5", ProjectID: "p1", Name: "fresh"}},
	}}
	s := NewTaskStore(svc, c)
	s.FetchAll(ctx)

	require.NoError(t, s.SyncProject(ctx, "p1"))

	want := []models.Task{
		{ID: "t3", ProjectID: "p2", Name: "c", Status: models.TaskDone},
		{ID: "t5", ProjectID: "p1", Name: "fresh"},
	}
	assert.Equal(t, want, s.Tasks())
	assert.Equal(t, want, loadCache[[]models.Task](t, c, cache.KeyTasks))
	assert.Equal(t, 1, svc.count("GetByProjectID"))
}

func TestTaskStore_SyncProject_Failure(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	seedCache(t, c, cache.KeyTasks, sampleTasks())
	s := NewTaskStore(&fakeTaskService{err: errRemote}, c)
	s.FetchAll(ctx)

	assert.ErrorIs(t, s.SyncProject(ctx, "p1"), errRemote)
	assert.Equal(t, sampleTasks(), s.Tasks())
}

func TestTaskStore_FetchAll_FailureMessage(t *testing.T) {
	c, _ := newTestCache(t)
	s := NewTaskStore(&fakeTaskService{err: errRemote}, c)
	s.FetchAll(context.Background())

	assert.Equal(t, "Failed to fetch tasks", s.Error())
	assert.False(t, s.IsLoading())
}

func TestTaskStore_GetTaskByID(t *testing.T) {
	c, _ := newTestCache(t)
	seedCache(t, c, cache.KeyTasks, sampleTasks())
	s := NewTaskStore(&fakeTaskService{}, c)
	s.FetchAll(context.Background())

	got, ok := s.GetTaskByID("t2")
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)

	_, ok = s.GetTaskByID("zzz")
	assert.False(t, ok)
}

func TestTaskStore_ReadsCopyPosition(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	pos := 1.5
	seedCache(t, c, cache.KeyTasks, []models.Task{{ID: "t1", ProjectID: "p1", Position: &pos}})
	s := NewTaskStore(&fakeTaskService{}, c)
	s.FetchAll(ctx)

	*s.Tasks()[0].Position = 9
	*s.TasksByProject("p1").Tasks()[0].Position = 9
	found, ok := s.GetTaskByID("t1")
	require.True(t, ok)
	*found.Position = 9

	held, _ := s.GetTaskByID("t1")
	assert.Equal(t, 1.5, *held.Position)
}
