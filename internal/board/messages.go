package board

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/taskdeck/internal/events"
)

// loadedMsg is sent when a fetch or refresh of both collections finished
type loadedMsg struct{}

// changeMsg carries one store change from the event broker
type changeMsg struct {
	Event events.Event
}

// waitForEvent returns a command that blocks until the next broker event.
// It returns nil when the channel is closed so the loop stops.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg{Event: event}
	}
}
