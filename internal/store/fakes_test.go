package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/project"
	"github.com/thenoetrevino/taskdeck/internal/services/task"
	"github.com/thenoetrevino/taskdeck/internal/services/worker"
)

var errRemote = errors.New("remote unavailable")

// ============================================================================
// FAKE SERVICES
// ============================================================================

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) record(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c == name {
			n++
		}
	}
	return n
}

type fakeProjectService struct {
	callLog
	all       []models.Project
	err       error
	createRet models.Project
	updateRet models.Project
}

func (f *fakeProjectService) GetAll(ctx context.Context) ([]models.Project, error) {
	f.record("GetAll")
	return f.all, f.err
}

func (f *fakeProjectService) GetByID(ctx context.Context, id string) (models.Project, error) {
	f.record("GetByID")
	for _, p := range f.all {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, errRemote
}

func (f *fakeProjectService) Create(ctx context.Context, req project.CreateProjectRequest) (models.Project, error) {
	f.record("Create")
	return f.createRet, f.err
}

func (f *fakeProjectService) Update(ctx context.Context, id string, req project.UpdateProjectRequest) (models.Project, error) {
	f.record("Update")
	return f.updateRet, f.err
}

func (f *fakeProjectService) Delete(ctx context.Context, id string) error {
	f.record("Delete")
	return f.err
}

type fakeTaskService struct {
	callLog
	all       []models.Task
	byProject map[string][]models.Task
	err       error
	createRet models.Task
	updateRet models.Task
}

func (f *fakeTaskService) GetAll(ctx context.Context) ([]models.Task, error) {
	f.record("GetAll")
	return f.all, f.err
}

func (f *fakeTaskService) GetByID(ctx context.Context, id string) (models.Task, error) {
	f.record("GetByID")
	return models.Task{}, errRemote
}

func (f *fakeTaskService) GetByProjectID(ctx context.Context, projectID string) ([]models.Task, error) {
	f.record("GetByProjectID")
	return f.byProject[projectID], f.err
}

func (f *fakeTaskService) Create(ctx context.Context, req task.CreateTaskRequest) (models.Task, error) {
	f.record("Create")
	return f.createRet, f.err
}

func (f *fakeTaskService) Update(ctx context.Context, id string, req task.UpdateTaskRequest) (models.Task, error) {
	f.record("Update")
	return f.updateRet, f.err
}

func (f *fakeTaskService) Delete(ctx context.Context, id string) error {
	f.record("Delete")
	return f.err
}

type fakeWorkerService struct {
	callLog
	all       []models.Worker
	err       error
	createRet models.Worker
	updateRet models.Worker
}

func (f *fakeWorkerService) GetAll(ctx context.Context) ([]models.Worker, error) {
	f.record("GetAll")
	return f.all, f.err
}

func (f *fakeWorkerService) Create(ctx context.Context, req worker.CreateWorkerRequest) (models.Worker, error) {
	f.record("Create")
	return f.createRet, f.err
}

func (f *fakeWorkerService) Update(ctx context.Context, id string, req worker.UpdateWorkerRequest) (models.Worker, error) {
	f.record("Update")
	return f.updateRet, f.err
}

func (f *fakeWorkerService) Delete(ctx context.Context, id string) error {
	f.record("Delete")
	return f.err
}

// ============================================================================
// CACHE HELPERS
// ============================================================================

func newTestCache(t *testing.T) (*cache.Adapter, *cache.MemoryBackend) {
	t.Helper()
	backend := cache.NewMemoryBackend()
	return cache.New(backend), backend
}

func seedCache[T any](t *testing.T, a *cache.Adapter, key string, v T) {
	t.Helper()
	require.NoError(t, cache.Save(context.Background(), a, key, v))
}

func loadCache[T any](t *testing.T, a *cache.Adapter, key string) T {
	t.Helper()
	v, ok := cache.Load[T](context.Background(), a, key)
	require.True(t, ok, "expected cache entry %q", key)
	return v
}

// failingBackend accepts reads of nothing and rejects every write
type failingBackend struct{}

func (failingBackend) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (failingBackend) Put(context.Context, string, []byte) error { return errors.New("disk full") }
func (failingBackend) Delete(context.Context, string) error { return nil }
func (failingBackend) Keys(context.Context) ([]string, error) { return nil, nil }
func (failingBackend) Close() error { return nil }

// Compile-time interface verification
var (
	_ project.Service = (*fakeProjectService)(nil)
	_ task.Service    = (*fakeTaskService)(nil)
	_ worker.Service  = (*fakeWorkerService)(nil)
	_ cache.Backend   = failingBackend{}
)
