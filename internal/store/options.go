package store

import (
	"log/slog"

	"github.com/thenoetrevino/taskdeck/internal/events"
	"github.com/thenoetrevino/taskdeck/internal/metrics"
)

type settings struct {
	logger    *slog.Logger
	recorder  metrics.Recorder
	publisher events.EventPublisher
}

// Option configures a store
type Option func(*settings)

// WithLogger sets the store logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(r metrics.Recorder) Option {
	return func(s *settings) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithEventPublisher publishes every change to p in addition to listeners
func WithEventPublisher(p events.EventPublisher) Option {
	return func(s *settings) {
		s.publisher = p
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
