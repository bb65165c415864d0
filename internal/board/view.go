package board

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskdeck/internal/cli/styles"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

const (
	projectPaneWidth = 36
	minTaskPaneWidth = 30
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
)

// View renders the board
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = m.render()
	return view
}

func (m Model) render() string {
	if m.width == 0 {
		return "Loading..."
	}

	taskWidth := max(m.width-projectPaneWidth-4, minTaskPaneWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(projectPaneWidth).Render(m.renderProjects()),
		paneStyle.Width(taskWidth).Render(m.renderTasks()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("taskdeck"),
		body,
		m.renderStatus(),
		m.renderHelp(),
	)
}

func (m Model) renderProjects() string {
	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render("Projects"))
	b.WriteString("\n")

	if len(m.projects) == 0 {
		if m.loading {
			b.WriteString(styles.SubtitleStyle.Render("loading..."))
		} else {
			b.WriteString(styles.SubtitleStyle.Render("no projects"))
		}
		return b.String()
	}

	for i, p := range m.projects {
		line := fmt.Sprintf("%s (%d)", p.Name, p.TasksCount)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderTasks() string {
	project, ok := m.selectedProject()
	if !ok {
		return styles.SubtitleStyle.Render("select a project")
	}

	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render(project.Name))
	b.WriteString("\n")

	tasks := m.app.Tasks.TasksByProject(project.ID).Tasks()
	if len(tasks) == 0 {
		b.WriteString(styles.SubtitleStyle.Render("no tasks"))
		return b.String()
	}

	for _, status := range models.TaskStatuses {
		var group []models.Task
		for _, t := range tasks {
			if t.Status == status {
				group = append(group, t)
			}
		}
		if len(group) == 0 {
			continue
		}
		b.WriteString(styles.RenderTaskStatus(status))
		b.WriteString("\n")
		for _, t := range group {
			b.WriteString("  " + t.Name)
			if t.Assignee != "" {
				b.WriteString(styles.SubtitleStyle.Render(" @" + t.Assignee))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderStatus() string {
	switch {
	case m.err != "":
		return styles.ErrorStyle.Render(m.err)
	case m.loading:
		return styles.SubtitleStyle.Render("loading...")
	default:
		return styles.SubtitleStyle.Render(fmt.Sprintf("%d projects, %d changes", len(m.projects), m.changes))
	}
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, 4)
	for _, b := range m.keys.bindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.SubtitleStyle.Render(strings.Join(parts, " • "))
}
