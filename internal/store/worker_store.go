package store

import (
	"context"

	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/worker"
)

const fetchWorkersError = "Failed to fetch workers"

// WorkerStore is the reactive worker collection
type WorkerStore struct {
	*Collection[models.Worker]
	service worker.Service
}

// NewWorkerStore creates an empty worker store
func NewWorkerStore(service worker.Service, c *cache.Adapter, opts ...Option) *WorkerStore {
	return &WorkerStore{
		Collection: newCollection[models.Worker](cache.KeyWorkers, fetchWorkersError, c, opts),
		service:    service,
	}
}

// Workers returns a copy of the worker collection
func (s *WorkerStore) Workers() []models.Worker {
	return s.Items()
}

// FetchAll loads workers, preferring the cached snapshot
func (s *WorkerStore) FetchAll(ctx context.Context) {
	s.fetchAll(ctx, s.service.GetAll)
}

// Refresh discards the cached snapshot and fetches from the remote
func (s *WorkerStore) Refresh(ctx context.Context) {
	s.refresh(ctx, s.service.GetAll)
}

// Add creates a worker remotely and appends the server's copy
func (s *WorkerStore) Add(ctx context.Context, req worker.CreateWorkerRequest) (models.Worker, error) {
	return s.add(ctx, func(ctx context.Context) (models.Worker, error) {
		return s.service.Create(ctx, req)
	})
}

// Update applies req remotely and replaces the held entry with the response
func (s *WorkerStore) Update(ctx context.Context, id string, req worker.UpdateWorkerRequest) (models.Worker, error) {
	return s.update(ctx, id, func(ctx context.Context) (models.Worker, error) {
		return s.service.Update(ctx, id, req)
	})
}

// Delete removes a worker remotely, then locally
func (s *WorkerStore) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id, func(ctx context.Context) error {
		return s.service.Delete(ctx, id)
	})
}

// GetWorkerByID returns the held worker with id
func (s *WorkerStore) GetWorkerByID(id string) (models.Worker, bool) {
	return s.Find(id)
}
