// Package board is a read-only terminal board over the entity stores: projects
// with their task counts on the left, the selected project's tasks on the right.
package board

import (
	"context"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/taskdeck/internal/app"
	"github.com/thenoetrevino/taskdeck/internal/events"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// Model is the bubbletea model of the board
type Model struct {
	ctx    context.Context
	app    *app.App
	keys   keyMap
	events <-chan events.Event

	projects []models.Project
	selected int
	loading  bool
	err      string
	changes  int

	width  int
	height int
}

// New creates a board model. The board subscribes to app.Events for as long
// as ctx lives.
func New(ctx context.Context, a *app.App) (Model, error) {
	ch, err := a.Events.Listen(ctx)
	if err != nil {
		return Model{}, err
	}
	return Model{
		ctx:     ctx,
		app:     a,
		keys:    newKeyMap(a.Config.KeyMappings),
		events:  ch,
		loading: true,
	}, nil
}

// Init starts the initial load and the event loop
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(false), waitForEvent(m.events))
}

// load fetches tasks before projects so counts are complete when projects arrive
func (m Model) load(refresh bool) tea.Cmd {
	ctx, a := m.ctx, m.app
	return func() tea.Msg {
		if refresh {
			a.Tasks.Refresh(ctx)
			a.Projects.Refresh(ctx)
		} else {
			a.Tasks.FetchAll(ctx)
			a.Projects.FetchAll(ctx)
		}
		return loadedMsg{}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.sync()
		return m, nil

	case changeMsg:
		if msg.Event.Changed() {
			m.changes++
		}
		m.sync()
		return m, waitForEvent(m.events)

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if m.selected < len(m.projects)-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.Prev):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load(true)
		}
		return m, nil
	}

	return m, nil
}

// sync re-reads the projects and the first error from the stores
func (m *Model) sync() {
	m.projects = m.app.Projects.ProjectsWithCount()
	if m.selected >= len(m.projects) {
		m.selected = max(len(m.projects)-1, 0)
	}

	m.err = ""
	for _, msg := range []string{m.app.Projects.Error(), m.app.Tasks.Error()} {
		if msg != "" {
			m.err = msg
			break
		}
	}
}

// selectedProject returns the highlighted project
func (m Model) selectedProject() (models.Project, bool) {
	if len(m.projects) == 0 {
		return models.Project{}, false
	}
	return m.projects[m.selected], true
}
