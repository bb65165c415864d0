package task

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/thenoetrevino/taskdeck/internal/models"
)

const resource = "/tasks"

// Service defines all task-related remote operations
type Service interface {
	// Read operations
	GetAll(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (models.Task, error)
	GetByProjectID(ctx context.Context, projectID string) ([]models.Task, error)

	// Write operations
	Create(ctx context.Context, req CreateTaskRequest) (models.Task, error)
	Update(ctx context.Context, id string, req UpdateTaskRequest) (models.Task, error)
	Delete(ctx context.Context, id string) error
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	ProjectID string            `json:"projectId"`
	Name      string            `json:"name"`
	Assignee  string            `json:"assignee"`
	Status    models.TaskStatus `json:"status"`
	DueDate   string            `json:"dueDate"`
	Position  *float64          `json:"position,omitempty"`
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update
type UpdateTaskRequest struct {
	ProjectID *string            `json:"projectId,omitempty"`
	Name      *string            `json:"name,omitempty"`
	Assignee  *string            `json:"assignee,omitempty"`
	Status    *models.TaskStatus `json:"status,omitempty"`
	DueDate   *string            `json:"dueDate,omitempty"`
	Position  *float64           `json:"position,omitempty"`
}

// transport defines the remote calls needed by the task service
type transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// service implements Service interface
type service struct {
	api transport
}

// NewService creates a new task service
func NewService(api transport) Service {
	return &service{api: api}
}

// GetAll retrieves every task
func (s *service) GetAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.api.Get(ctx, resource, &tasks); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a single task
func (s *service) GetByID(ctx context.Context, id string) (models.Task, error) {
	if id == "" {
		return models.Task{}, ErrInvalidTaskID
	}
	var task models.Task
	if err := s.api.Get(ctx, itemPath(id), &task); err != nil {
		return models.Task{}, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return task, nil
}

// GetByProjectID lets the server filter tasks by project
func (s *service) GetByProjectID(ctx context.Context, projectID string) ([]models.Task, error) {
	if projectID == "" {
		return nil, ErrEmptyProject
	}
	query := url.Values{"projectId": []string{projectID}}
	var tasks []models.Task
	if err := s.api.Get(ctx, resource+"?"+query.Encode(), &tasks); err != nil {
		return nil, fmt.Errorf("failed to list tasks of project %s: %w", projectID, err)
	}
	return tasks, nil
}

// Create handles task creation with validation
func (s *service) Create(ctx context.Context, req CreateTaskRequest) (models.Task, error) {
	if req.Status == "" {
		req.Status = models.TaskToDo
	}
	if err := validateCreateTask(req); err != nil {
		return models.Task{}, err
	}

	var task models.Task
	if err := s.api.Post(ctx, resource, req, &task); err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update sends the set fields of req and returns the server's representation
func (s *service) Update(ctx context.Context, id string, req UpdateTaskRequest) (models.Task, error) {
	if id == "" {
		return models.Task{}, ErrInvalidTaskID
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return models.Task{}, ErrEmptyName
	}
	if req.Status != nil && !slices.Contains(models.TaskStatuses, *req.Status) {
		return models.Task{}, fmt.Errorf("%w %q", models.ErrInvalidStatus, *req.Status)
	}

	var task models.Task
	if err := s.api.Put(ctx, itemPath(id), req, &task); err != nil {
		return models.Task{}, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return task, nil
}

// Delete deletes a task
func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidTaskID
	}
	if err := s.api.Delete(ctx, itemPath(id)); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}

func validateCreateTask(req CreateTaskRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyName
	}
	if req.ProjectID == "" {
		return ErrEmptyProject
	}
	if !slices.Contains(models.TaskStatuses, req.Status) {
		return fmt.Errorf("%w %q", models.ErrInvalidStatus, req.Status)
	}
	return nil
}

func itemPath(id string) string {
	return resource + "/" + url.PathEscape(id)
}
