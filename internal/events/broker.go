package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultQueueSize = 100

// Broker is an in-process publish/subscribe hub for store change events.
// Delivery never blocks the publisher: a listener whose queue is full
// misses the event.
type Broker struct {
	mu        sync.Mutex
	listeners map[int]chan Event
	nextID    int
	queueSize int
	closed    bool
	done      chan struct{}
	logger    *slog.Logger
}

// BrokerOption configures a Broker
type BrokerOption func(*Broker)

// WithQueueSize sets the per-listener buffer size
func WithQueueSize(n int) BrokerOption {
	return func(b *Broker) {
		if n > 0 {
			b.queueSize = n
		}
	}
}

// WithLogger sets the logger used to report dropped events
func WithLogger(logger *slog.Logger) BrokerOption {
	return func(b *Broker) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBroker creates an empty broker
func NewBroker(opts ...BrokerOption) *Broker {
	b := &Broker{
		listeners: make(map[int]chan Event),
		queueSize: defaultQueueSize,
		done:      make(chan struct{}),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SendEvent delivers event to every listener without blocking
func (b *Broker) SendEvent(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrokerClosed
	}

	for id, ch := range b.listeners {
		select {
		case ch <- event:
		default:
			b.logger.Warn("event queue full, dropping event",
				"listener", id,
				"entity", event.Entity,
				"op", event.Op)
		}
	}
	return nil
}

// Listen registers a new listener. The channel is closed when ctx is done
// or the broker is closed, whichever comes first.
func (b *Broker) Listen(ctx context.Context) (<-chan Event, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBrokerClosed
	}
	id := b.nextID
	b.nextID++
	ch := make(chan Event, b.queueSize)
	b.listeners[id] = ch
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			b.remove(id)
		case <-b.done:
		}
	}()

	return ch, nil
}

func (b *Broker) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.listeners[id]; ok {
		delete(b.listeners, id)
		close(ch)
	}
}

// Close closes all listener channels. Close is idempotent.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)
	for id, ch := range b.listeners {
		delete(b.listeners, id)
		close(ch)
	}
	return nil
}
