// Package store holds the reactive entity stores.
//
// Each store owns one in-memory collection, mirrors it into the local cache
// under a fixed key and talks to the remote API through an entity service.
// Reads prefer the cache on first load; mutations go to the remote first
// and only then touch memory and the cache.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/events"
	"github.com/thenoetrevino/taskdeck/internal/metrics"
)

// Collection is the generic reactive list behind every entity store.
// The mutex guards fields only; it is never held across a remote call or
// a cache write, so overlapping operations resolve as last completion wins.
type Collection[T Entity] struct {
	mu        sync.RWMutex
	items     []T
	isLoading bool
	err       string
	phase     Phase
	version   uint64

	// pmu orders snapshot writes so the last write carries the newest state
	pmu sync.Mutex

	lmu       sync.Mutex
	listeners map[int]func(State[T])
	nextID    int

	key      string
	fetchErr string
	cache    *cache.Adapter
	settings
}

func newCollection[T Entity](key, fetchErr string, c *cache.Adapter, opts []Option) *Collection[T] {
	return &Collection[T]{
		items:     []T{},
		listeners: make(map[int]func(State[T])),
		key:       key,
		fetchErr:  fetchErr,
		cache:     c,
		settings:  newSettings(opts),
	}
}

// Key returns the cache key the collection persists under
func (c *Collection[T]) Key() string { return c.key }

// Items returns a deep copy of the collection
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneItems(c.items)
}

// Find returns the entry with id
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.GetID() == id {
			return cloneItem(item), true
		}
	}
	var zero T
	return zero, false
}

// IsLoading reports whether a remote fetch is in flight
func (c *Collection[T]) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isLoading
}

// Error returns the last fetch error message, empty if none
func (c *Collection[T]) Error() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Phase returns the load phase
func (c *Collection[T]) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// Version increases on every collection change
func (c *Collection[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Collection[T]) stateLocked() State[T] {
	return State[T]{
		Items:     cloneItems(c.items),
		IsLoading: c.isLoading,
		Error:     c.err,
		Phase:     c.phase,
		Version:   c.version,
	}
}

// Subscribe registers fn to be called after every state change.
// The returned func removes the listener.
func (c *Collection[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	c.lmu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.lmu.Lock()
			delete(c.listeners, id)
			c.lmu.Unlock()
		})
	}
}

// FetchAll populates the collection. A cached snapshot is adopted as is and
// the remote is not called; otherwise getAll runs and its result replaces
// the collection and the cache. Failure is reported through Error only.
func (c *Collection[T]) fetchAll(ctx context.Context, getAll func(context.Context) ([]T, error)) {
	if cached, ok := cache.Load[[]T](ctx, c.cache, c.key); ok && cached != nil {
		c.recorder.IncCacheHit(c.key)
		c.logger.Debug("collection loaded from cache", "entity", c.key, "count", len(cached))
		c.mutate(events.OpCache, "", func() {
			c.items = cached
			c.phase = PhasePopulated
		})
		return
	}
	c.recorder.IncCacheMiss(c.key)

	c.setState(func() {
		c.isLoading = true
		c.phase = PhaseLoading
	})

	start := time.Now()
	items, err := getAll(ctx)
	c.recorder.ObserveRemoteCall(c.key, "get_all", time.Since(start), metrics.ResultOf(err))

	if err != nil {
		c.logger.Error("fetch failed", "entity", c.key, "error", err)
		c.setState(func() {
			c.err = c.fetchErr
			c.isLoading = false
			c.phase = PhaseFailed
		})
		return
	}

	if items == nil {
		items = []T{}
	}
	c.mutate(events.OpFetch, "", func() {
		c.items = items
		c.isLoading = false
		c.phase = PhasePopulated
	})
	c.persist(ctx)
}

// refresh drops the cached snapshot so the next fetch goes remote
func (c *Collection[T]) refresh(ctx context.Context, getAll func(context.Context) ([]T, error)) {
	if err := c.cache.Clear(ctx, c.key); err != nil {
		c.logger.Warn("failed to clear cache before refresh", "entity", c.key, "error", err)
	}
	c.fetchAll(ctx, getAll)
}

func (c *Collection[T]) add(ctx context.Context, create func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	created, err := create(ctx)
	c.recorder.ObserveRemoteCall(c.key, "create", time.Since(start), metrics.ResultOf(err))
	if err != nil {
		var zero T
		return zero, err
	}

	c.mutate(events.OpAdd, created.GetID(), func() {
		c.items = append(c.items, cloneItem(created))
	})
	c.persist(ctx)
	return created, nil
}

// update replaces the entry matching id with the server's entity.
// An id that is not held leaves the collection as is but the snapshot is
// still written.
func (c *Collection[T]) update(ctx context.Context, id string, apply func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	updated, err := apply(ctx)
	c.recorder.ObserveRemoteCall(c.key, "update", time.Since(start), metrics.ResultOf(err))
	if err != nil {
		var zero T
		return zero, err
	}

	c.mutate(events.OpUpdate, id, func() {
		if i := c.indexLocked(id); i >= 0 {
			c.items = slices.Clone(c.items)
			c.items[i] = cloneItem(updated)
		}
	})
	c.persist(ctx)
	return updated, nil
}

func (c *Collection[T]) remove(ctx context.Context, id string, del func(context.Context) error) error {
	start := time.Now()
	err := del(ctx)
	c.recorder.ObserveRemoteCall(c.key, "delete", time.Since(start), metrics.ResultOf(err))
	if err != nil {
		return err
	}

	c.mutate(events.OpDelete, id, func() {
		c.items = slices.DeleteFunc(slices.Clone(c.items), func(item T) bool {
			return item.GetID() == id
		})
	})
	c.persist(ctx)
	return nil
}

// replaceWhere swaps every entry matching match for with. Entries that do
// not match keep their order; with is appended after them.
func (c *Collection[T]) replaceWhere(ctx context.Context, id string, match func(T) bool, with []T) {
	c.mutate(events.OpSync, id, func() {
		kept := slices.DeleteFunc(slices.Clone(c.items), match)
		c.items = append(kept, with...)
		c.phase = PhasePopulated
	})
	c.persist(ctx)
}

func (c *Collection[T]) indexLocked(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool {
		return item.GetID() == id
	})
}

// persist writes the full collection. A failed write does not undo the
// in-memory change.
func (c *Collection[T]) persist(ctx context.Context) {
	c.pmu.Lock()
	defer c.pmu.Unlock()

	items := c.Items()
	if err := cache.Save(ctx, c.cache, c.key, items); err != nil {
		c.logger.Warn("failed to persist collection", "entity", c.key, "error", err)
	}
}

// mutate changes the collection under the lock, bumps the version and notifies
func (c *Collection[T]) mutate(op events.Op, id string, fn func()) {
	c.mu.Lock()
	fn()
	c.version++
	state := c.stateLocked()
	c.mu.Unlock()

	c.recorder.SetCollectionSize(c.key, len(state.Items))
	c.notify(state, op, id)
}

// setState changes loading or error fields without touching the collection
func (c *Collection[T]) setState(fn func()) {
	c.mu.Lock()
	fn()
	state := c.stateLocked()
	c.mu.Unlock()

	c.notify(state, events.OpState, "")
}

func (c *Collection[T]) notify(state State[T], op events.Op, id string) {
	c.lmu.Lock()
	fns := make([]func(State[T]), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.lmu.Unlock()

	for _, fn := range fns {
		fn(state)
	}

	events.Publish(c.publisher, events.Event{
		Type:    events.EventCollectionChanged,
		Entity:  c.key,
		Op:      op,
		ID:      id,
		Version: state.Version,
	})
}
