package models

// TaskStatus is the workflow state of a task
type TaskStatus string

const (
	TaskToDo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskDone       TaskStatus = "Done"
)

// TaskStatuses lists every task status in board order
var TaskStatuses = []TaskStatus{TaskToDo, TaskInProgress, TaskDone}

var taskStatusColors = map[TaskStatus]string{
	TaskToDo:       "#1290E0",
	TaskInProgress: "#E16B16",
	TaskDone:       "#008844",
}

// Color returns the hex color used when rendering the status
func (s TaskStatus) Color() string {
	if c, ok := taskStatusColors[s]; ok {
		return c
	}
	return "#808080"
}

// Task represents a single unit of work inside a project.
// ProjectID is a reference only; nothing at this layer checks that the project exists.
type Task struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"projectId"`
	Name      string     `json:"name"`
	Assignee  string     `json:"assignee"`
	Status    TaskStatus `json:"status"`
	DueDate   string     `json:"dueDate"`
	Position  *float64   `json:"position,omitempty"` // ordering hint for drag-reorder
}

// GetID returns the task identifier
func (t Task) GetID() string { return t.ID }

// Clone returns a copy that shares no pointers with t
func (t Task) Clone() Task {
	c := t
	if t.Position != nil {
		pos := *t.Position
		c.Position = &pos
	}
	return c
}
