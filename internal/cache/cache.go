// Package cache persists JSON snapshots of store collections under fixed keys.
//
// The cache is non-authoritative: it has no expiry, no versioning and no
// partial updates. Every Save replaces the whole value stored under a key.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Keys used by the entity stores. Each store owns exactly one key.
const (
	KeyProjects = "projects"
	KeyTasks    = "tasks"
	KeyWorkers  = "workers"
)

// ErrClosed is returned by backends used after Close
var ErrClosed = errors.New("cache backend closed")

// Backend stores raw bytes by key
type Backend interface {
	// Get returns the bytes stored under key. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Put overwrites the bytes stored under key
	Put(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists the stored keys in sorted order
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Adapter serializes values to JSON on top of a Backend
type Adapter struct {
	backend Backend
	logger  *slog.Logger
}

// Option configures an Adapter
type Option func(*Adapter)

// WithLogger sets the logger used to report unreadable entries
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New wraps backend in an Adapter
func New(backend Backend, opts ...Option) *Adapter {
	a := &Adapter{backend: backend, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load retrieves and decodes the value stored under key.
// A missing key, a backend failure and undecodable data all report ok=false;
// the last two are logged rather than returned.
func Load[T any](ctx context.Context, a *Adapter, key string) (value T, ok bool) {
	data, found, err := a.backend.Get(ctx, key)
	if err != nil {
		a.logger.Warn("cache read failed", "key", key, "error", err)
		return value, false
	}
	if !found {
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		a.logger.Error("cache entry is not valid JSON", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return value, true
}

// Save encodes value and unconditionally overwrites whatever key held before
func Save[T any](ctx context.Context, a *Adapter, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %q: %w", key, err)
	}
	if err := a.backend.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write cache entry %q: %w", key, err)
	}
	return nil
}

// Clear removes the value stored under key
func (a *Adapter) Clear(ctx context.Context, key string) error {
	if err := a.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to clear cache entry %q: %w", key, err)
	}
	return nil
}

// Keys lists the keys currently holding a value
func (a *Adapter) Keys(ctx context.Context) ([]string, error) {
	return a.backend.Keys(ctx)
}

// Close releases the backend
func (a *Adapter) Close() error {
	return a.backend.Close()
}
