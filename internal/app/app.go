package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/events"
	"github.com/thenoetrevino/taskdeck/internal/metrics"
	projectservice "github.com/thenoetrevino/taskdeck/internal/services/project"
	taskservice "github.com/thenoetrevino/taskdeck/internal/services/task"
	workerservice "github.com/thenoetrevino/taskdeck/internal/services/worker"
	"github.com/thenoetrevino/taskdeck/internal/store"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	// Local snapshot cache shared by every store
	Cache *cache.Adapter

	// Event system for live updates
	Events events.EventPublisher

	// Service layer (remote API)
	ProjectService projectservice.Service
	TaskService    taskservice.Service
	WorkerService  workerservice.Service

	// Store layer (reactive state)
	Projects *store.ProjectStore
	Tasks    *store.TaskStore
	Workers  *store.WorkerStore

	ownsEvents bool
}

// New creates a new App with all services and stores initialized.
// This is the single entry point for creating the application container.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	options := &appConfig{
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if options.recorder == nil {
		options.recorder = metrics.NoopRecorder{}
	}

	clientOpts := []api.Option{
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(options.logger),
	}
	if options.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(options.httpClient))
	}
	client, err := api.NewClient(cfg.API.BaseURL, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	backend := options.cacheBackend
	if backend == nil {
		backend, err = openBackend(ctx, cfg.Cache)
		if err != nil {
			return nil, err
		}
	}

	a := &App{
		Config:         cfg,
		Logger:         options.logger,
		Cache:          cache.New(backend, cache.WithLogger(options.logger)),
		Events:         options.eventClient,
		ProjectService: projectservice.NewService(client),
		TaskService:    taskservice.NewService(client),
		WorkerService:  workerservice.NewService(client),
	}
	if a.Events == nil {
		a.Events = events.NewBroker(
			events.WithLogger(options.logger),
			events.WithQueueSize(cfg.Events.QueueSize),
		)
		a.ownsEvents = true
	}

	storeOpts := []store.Option{
		store.WithLogger(options.logger),
		store.WithRecorder(options.recorder),
		store.WithEventPublisher(a.Events),
	}

	// The task store must exist before the project store, which reads its counts
	a.Tasks = store.NewTaskStore(a.TaskService, a.Cache, storeOpts...)
	a.Projects = store.NewProjectStore(a.ProjectService, a.Cache, a.Tasks, storeOpts...)
	a.Workers = store.NewWorkerStore(a.WorkerService, a.Cache, storeOpts...)

	return a, nil
}

func openBackend(ctx context.Context, cfg config.CacheConfig) (cache.Backend, error) {
	switch cfg.Backend {
	case config.CacheBackendMemory:
		return cache.NewMemoryBackend(), nil
	case config.CacheBackendSQLite, "":
		b, err := cache.OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", config.ErrInvalidConfig, cfg.Backend)
	}
}

// Close releases the cache and, when the app created it, the event broker
func (a *App) Close() error {
	var errs []error
	if a.ownsEvents && a.Events != nil {
		errs = append(errs, a.Events.Close())
	}
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	return errors.Join(errs...)
}
