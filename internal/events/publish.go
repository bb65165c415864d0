package events

import "log/slog"

// Publish sends event through publisher, logging instead of returning failures.
// A nil publisher is skipped silently (stores built without a broker).
func Publish(publisher EventPublisher, event Event) {
	if publisher == nil {
		return
	}

	if err := publisher.SendEvent(event); err != nil {
		slog.Warn("event publish failed",
			"event_type", event.Type,
			"entity", event.Entity,
			"op", event.Op,
			"error", err)
	}
}
