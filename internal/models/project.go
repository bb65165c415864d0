package models

import "time"

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectArchived  ProjectStatus = "Archived"
	ProjectCompleted ProjectStatus = "Completed"
)

// ProjectStatuses lists every project status in display order
var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectArchived, ProjectCompleted}

// Project represents a container for tasks.
// TasksCount is derived from the task collection and is never authoritative.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   string        `json:"createdAt"`
	TasksCount  int           `json:"tasksCount,omitempty"`
}

// GetID returns the project identifier
func (p Project) GetID() string { return p.ID }

// CreatedTime parses CreatedAt, returning the zero time when it is not RFC 3339
func (p Project) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
