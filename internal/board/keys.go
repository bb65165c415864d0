package board

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/taskdeck/internal/config"
)

// keyMap holds the board's key bindings
type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys(km.NextProject, "down"),
			key.WithHelp(km.NextProject+"/↓", "next project"),
		),
		Prev: key.NewBinding(
			key.WithKeys(km.PrevProject, "up"),
			key.WithHelp(km.PrevProject+"/↑", "prev project"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(km.Refresh),
			key.WithHelp(km.Refresh, "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys(km.Quit, "ctrl+c"),
			key.WithHelp(km.Quit, "quit"),
		),
	}
}

// bindings lists the bindings in help order
func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Refresh, k.Quit}
}
