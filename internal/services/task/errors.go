package task

import "errors"

// Domain errors for task service
var (
	ErrEmptyName     = errors.New("task name cannot be empty")
	ErrInvalidTaskID = errors.New("invalid task ID")
	ErrEmptyProject  = errors.New("task must reference a project")
)
