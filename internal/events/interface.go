package events

import "context"

// EventPublisher defines the interface for sending and receiving change events.
// Stores depend on this interface rather than on the Broker so tests can
// record events without running a broker.
type EventPublisher interface {
	// SendEvent fans an event out to every current listener
	SendEvent(event Event) error

	// Listen registers a listener. The channel is closed when ctx is done
	// or the publisher is closed.
	Listen(ctx context.Context) (<-chan Event, error)

	// Close stops delivery and closes every listener channel
	Close() error
}

// Compile-time verification that *Broker implements EventPublisher
var _ EventPublisher = (*Broker)(nil)
