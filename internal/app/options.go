package app

import (
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/events"
	"github.com/thenoetrevino/taskdeck/internal/metrics"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient  events.EventPublisher
	logger       *slog.Logger
	recorder     metrics.Recorder
	cacheBackend cache.Backend
	httpClient   *http.Client
}

// WithEventPublisher sets the event publisher for the application.
// Without it the app runs its own in-process broker.
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithRecorder sets the metrics recorder shared by every store
func WithRecorder(r metrics.Recorder) Option {
	return func(cfg *appConfig) {
		cfg.recorder = r
	}
}

// WithCacheBackend overrides the backend selected by the config
func WithCacheBackend(b cache.Backend) Option {
	return func(cfg *appConfig) {
		cfg.cacheBackend = b
	}
}

// WithHTTPClient sets the HTTP client used to reach the remote API
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *appConfig) {
		cfg.httpClient = hc
	}
}
