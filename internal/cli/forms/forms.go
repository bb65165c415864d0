// Package forms holds the interactive huh forms the create commands fall
// back to when required flags are missing and stdin is a terminal.
package forms

import (
	"errors"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// ErrCancelled is returned when the user declines the confirmation
var ErrCancelled = errors.New("cancelled")

// ProjectInput is bound to the fields of ProjectForm
type ProjectInput struct {
	Name        string
	Description string
	Status      string
	Confirm     bool
}

// TaskInput is bound to the fields of TaskForm
type TaskInput struct {
	ProjectID string
	Name      string
	Assignee  string
	Status    string
	DueDate   string
	Confirm   bool
}

// ProjectForm asks for the fields of a new project
func ProjectForm(in *ProjectInput) *huh.Form {
	if in.Status == "" {
		in.Status = string(models.ProjectActive)
	}

	statuses := make([]huh.Option[string], 0, len(models.ProjectStatuses))
	for _, s := range models.ProjectStatuses {
		statuses = append(statuses, huh.NewOption(string(s), string(s)))
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("name").
			Title("Project Name").
			Placeholder("Enter project name...").
			Validate(required("project name")).
			Value(&in.Name),

		huh.NewText().
			Key("description").
			Title("Description (optional)").
			Placeholder("Markdown is rendered by project show").
			CharLimit(500).
			Lines(3).
			Value(&in.Description),

		huh.NewSelect[string]().
			Key("status").
			Title("Status").
			Options(statuses...).
			Value(&in.Status),

		huh.NewConfirm().
			Key("confirm").
			Title("Create this project?").
			Affirmative("Yes").
			Negative("No").
			Value(&in.Confirm),
	))
}

// TaskForm asks for the fields of a new task. projects feeds the project
// picker; it is skipped when in.ProjectID is already set.
func TaskForm(in *TaskInput, projects []models.Project) *huh.Form {
	if in.Status == "" {
		in.Status = string(models.TaskToDo)
	}

	var fields []huh.Field

	if in.ProjectID == "" {
		options := make([]huh.Option[string], 0, len(projects))
		for _, p := range projects {
			options = append(options, huh.NewOption(p.Name+" ("+p.ID+")", p.ID))
		}
		fields = append(fields,
			huh.NewSelect[string]().
				Key("project").
				Title("Project").
				Options(options...).
				Validate(required("project")).
				Value(&in.ProjectID),
		)
	}

	statuses := make([]huh.Option[string], 0, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		statuses = append(statuses, huh.NewOption(string(s), string(s)))
	}

	fields = append(fields,
		huh.NewInput().
			Key("name").
			Title("Task Name").
			Placeholder("Enter task name...").
			Validate(required("task name")).
			Value(&in.Name),

		huh.NewInput().
			Key("assignee").
			Title("Assignee (optional)").
			Value(&in.Assignee),

		huh.NewSelect[string]().
			Key("status").
			Title("Status").
			Options(statuses...).
			Value(&in.Status),

		huh.NewInput().
			Key("due").
			Title("Due date (optional)").
			Placeholder("2024-06-01").
			Value(&in.DueDate),

		huh.NewConfirm().
			Key("confirm").
			Title("Create this task?").
			Affirmative("Yes").
			Negative("No").
			Value(&in.Confirm),
	)

	return huh.NewForm(huh.NewGroup(fields...))
}

// Run shows form with the configured colors. confirmed is the value bound
// to the form's confirm field; a declined form yields ErrCancelled.
func Run(form *huh.Form, colors config.ColorScheme, confirmed *bool) error {
	err := form.
		WithTheme(Theme(colors)).
		WithKeyMap(keyMap()).
		WithShowHelp(false).
		Run()
	if err != nil {
		return err
	}
	if !*confirmed {
		return ErrCancelled
	}
	return nil
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}

// keyMap adds shift+enter to the newline keys of text fields
func keyMap() *huh.KeyMap {
	keymap := huh.NewDefaultKeyMap()
	keymap.Text.NewLine = key.NewBinding(
		key.WithKeys("shift+enter", "alt+enter", "ctrl+j"),
		key.WithHelp("shift+enter / alt+enter / ctrl+j", "new line"),
	)
	return keymap
}

// Theme maps the color scheme onto huh's base theme
func Theme(colors config.ColorScheme) huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		accent := lipgloss.Color(colors.Accent)
		title := lipgloss.Color(colors.Title)
		subtle := lipgloss.Color(colors.Subtle)
		normal := lipgloss.Color(colors.Normal)
		success := lipgloss.Color(colors.Success)
		errorColor := lipgloss.Color(colors.ErrorFg)

		t.Focused.Base = t.Focused.Base.BorderForeground(accent)
		t.Focused.Title = t.Focused.Title.Foreground(title).Bold(true)
		t.Focused.Description = t.Focused.Description.Foreground(subtle)
		t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errorColor)
		t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorColor)
		t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
		t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(success)
		t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(normal)
		t.Focused.FocusedButton = t.Focused.FocusedButton.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Bold(true)
		t.Focused.BlurredButton = t.Focused.BlurredButton.
			Foreground(normal).
			Background(subtle)
		t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
		t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(subtle)
		t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)

		t.Blurred = t.Focused
		t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
		t.Blurred.Title = t.Blurred.Title.Foreground(subtle)

		return t
	})
}
