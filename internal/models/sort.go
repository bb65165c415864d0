package models

import (
	"cmp"
	"fmt"
	"slices"
)

// SortProjects returns a sorted copy of projects ordered by key.
// The sort is stable so equal keys keep their collection order.
func SortProjects(projects []Project, key string, desc bool) ([]Project, error) {
	var compare func(a, b Project) int
	switch key {
	case "id":
		compare = func(a, b Project) int { return cmp.Compare(a.ID, b.ID) }
	case "name":
		compare = func(a, b Project) int { return cmp.Compare(a.Name, b.Name) }
	case "status":
		compare = func(a, b Project) int { return cmp.Compare(a.Status, b.Status) }
	case "tasksCount":
		compare = func(a, b Project) int { return cmp.Compare(a.TasksCount, b.TasksCount) }
	case "createdAt":
		compare = func(a, b Project) int { return a.CreatedTime().Compare(b.CreatedTime()) }
	default:
		return nil, fmt.Errorf("%w %q for projects", ErrInvalidSortKey, key)
	}
	return sortedCopy(projects, compare, desc), nil
}

// SortTasks returns a sorted copy of tasks ordered by key
func SortTasks(tasks []Task, key string, desc bool) ([]Task, error) {
	var compare func(a, b Task) int
	switch key {
	case "id":
		compare = func(a, b Task) int { return cmp.Compare(a.ID, b.ID) }
	case "name":
		compare = func(a, b Task) int { return cmp.Compare(a.Name, b.Name) }
	case "status":
		compare = func(a, b Task) int { return cmp.Compare(taskStatusRank(a.Status), taskStatusRank(b.Status)) }
	case "assignee":
		compare = func(a, b Task) int { return cmp.Compare(a.Assignee, b.Assignee) }
	case "dueDate":
		compare = func(a, b Task) int { return cmp.Compare(a.DueDate, b.DueDate) }
	default:
		return nil, fmt.Errorf("%w %q for tasks", ErrInvalidSortKey, key)
	}
	return sortedCopy(tasks, compare, desc), nil
}

func sortedCopy[T any](items []T, compare func(a, b T) int, desc bool) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

// taskStatusRank orders statuses by workflow position rather than alphabetically
func taskStatusRank(s TaskStatus) int {
	if i := slices.Index(TaskStatuses, s); i >= 0 {
		return i
	}
	return len(TaskStatuses)
}
