package models

import (
	"fmt"
	"strings"
)

// ============================================================================
// SORTABLE FIELDS
// ============================================================================

// ProjectSortKeys are the fields a project list can be ordered by
var ProjectSortKeys = []string{"id", "name", "status", "tasksCount", "createdAt"}

// TaskSortKeys are the fields a task list can be ordered by
var TaskSortKeys = []string{"id", "name", "status", "assignee", "dueDate"}

// ============================================================================
// STATUS PARSING
// ============================================================================

// ParseProjectStatus maps a user supplied string to a ProjectStatus, ignoring case
func ParseProjectStatus(s string) (ProjectStatus, error) {
	for _, status := range ProjectStatuses {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w %q (must be one of: Active, Archived, Completed)", ErrInvalidStatus, s)
}

// ParseTaskStatus maps a user supplied string to a TaskStatus.
// Matching ignores case, and "todo" and "in-progress" style spellings are accepted.
func ParseTaskStatus(s string) (TaskStatus, error) {
	normalized := normalizeStatus(s)
	for _, status := range TaskStatuses {
		if normalizeStatus(string(status)) == normalized {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w %q (must be one of: To Do, In Progress, Done)", ErrInvalidStatus, s)
}

func normalizeStatus(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}
