package store

import (
	"context"
	"sync"
	"time"

	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/metrics"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/task"
)

const fetchTasksError = "Failed to fetch tasks"

// TaskStore is the reactive task collection
type TaskStore struct {
	*Collection[models.Task]
	service task.Service

	countMu      sync.Mutex
	counts       map[string]int
	countVersion uint64
	countValid   bool
}

// Compile-time verification that *TaskStore feeds project counts
var _ TaskCounter = (*TaskStore)(nil)

// NewTaskStore creates an empty task store
func NewTaskStore(service task.Service, c *cache.Adapter, opts ...Option) *TaskStore {
	return &TaskStore{
		Collection: newCollection[models.Task](cache.KeyTasks, fetchTasksError, c, opts),
		service:    service,
	}
}

// Tasks returns a copy of the task collection
func (s *TaskStore) Tasks() []models.Task {
	return s.Items()
}

// FetchAll loads tasks, preferring the cached snapshot
func (s *TaskStore) FetchAll(ctx context.Context) {
	s.fetchAll(ctx, s.service.GetAll)
}

// Refresh discards the cached snapshot and fetches from the remote
func (s *TaskStore) Refresh(ctx context.Context) {
	s.refresh(ctx, s.service.GetAll)
}

// Add creates a task remotely and appends the server's copy
func (s *TaskStore) Add(ctx context.Context, req task.CreateTaskRequest) (models.Task, error) {
	return s.add(ctx, func(ctx context.Context) (models.Task, error) {
		return s.service.Create(ctx, req)
	})
}

// Update applies req remotely and replaces the held entry with the response
func (s *TaskStore) Update(ctx context.Context, id string, req task.UpdateTaskRequest) (models.Task, error) {
	return s.update(ctx, id, func(ctx context.Context) (models.Task, error) {
		return s.service.Update(ctx, id, req)
	})
}

// Delete removes a task remotely, then locally
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id, func(ctx context.Context) error {
		return s.service.Delete(ctx, id)
	})
}

// GetTaskByID returns the held task with id
func (s *TaskStore) GetTaskByID(id string) (models.Task, bool) {
	return s.Find(id)
}

// SyncProject reloads one project's tasks from the remote and swaps them
// into the collection. Tasks of other projects are untouched.
func (s *TaskStore) SyncProject(ctx context.Context, projectID string) error {
	start := time.Now()
	tasks, err := s.service.GetByProjectID(ctx, projectID)
	s.recorder.ObserveRemoteCall(s.key, "get_by_project", time.Since(start), metrics.ResultOf(err))
	if err != nil {
		return err
	}

	s.replaceWhere(ctx, projectID, func(t models.Task) bool {
		return t.ProjectID == projectID
	}, tasks)
	return nil
}

// CountByProject returns the number of tasks per project id. Projects with
// no tasks are absent. The map is recomputed only when the collection changes;
// callers must not modify it.
func (s *TaskStore) CountByProject() map[string]int {
	s.mu.RLock()
	version := s.version
	s.countMu.Lock()
	defer s.countMu.Unlock()
	if s.countValid && s.countVersion == version {
		s.mu.RUnlock()
		return s.counts
	}

	counts := make(map[string]int)
	for _, t := range s.items {
		counts[t.ProjectID]++
	}
	s.mu.RUnlock()

	s.counts = counts
	s.countVersion = version
	s.countValid = true
	return counts
}

// TasksByProject returns a live view over the tasks of projectID
func (s *TaskStore) TasksByProject(projectID string) *TaskView {
	return &TaskView{store: s, projectID: projectID}
}

// TaskView is a read-only filter over a TaskStore. It holds no data of its
// own; every call reads the current collection.
type TaskView struct {
	store     *TaskStore
	projectID string
}

// Tasks returns the project's tasks in collection order
func (v *TaskView) Tasks() []models.Task {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()

	out := []models.Task{}
	for _, t := range v.store.items {
		if t.ProjectID == v.projectID {
			out = append(out, t.Clone())
		}
	}
	return out
}
