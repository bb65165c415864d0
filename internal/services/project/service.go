package project

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/taskdeck/internal/models"
)

const resource = "/projects"

// Service defines all project-related remote operations
type Service interface {
	// Read operations
	GetAll(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (models.Project, error)

	// Write operations
	Create(ctx context.Context, req CreateProjectRequest) (models.Project, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (models.Project, error)
	Delete(ctx context.Context, id string) error
}

// CreateProjectRequest encapsulates data for creating a project.
// The server assigns the id; the service stamps createdAt.
type CreateProjectRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Status      models.ProjectStatus `json:"status"`
}

// UpdateProjectRequest encapsulates a partial project update.
// Nil fields are left out of the request body.
type UpdateProjectRequest struct {
	Name        *string               `json:"name,omitempty"`
	Description *string               `json:"description,omitempty"`
	Status      *models.ProjectStatus `json:"status,omitempty"`
}

// transport defines the remote calls needed by the project service
// This interface is private to the service layer
type transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// service implements Service interface with private transport
type service struct {
	api transport
	now func() time.Time
}

// Option configures the project service
type Option func(*service)

// WithClock replaces time.Now when stamping createdAt
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService creates a new project service on top of api
func NewService(api transport, opts ...Option) Service {
	s := &service{api: api, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAll retrieves all projects
func (s *service) GetAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := s.api.Get(ctx, resource, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetByID retrieves a specific project
func (s *service) GetByID(ctx context.Context, id string) (models.Project, error) {
	if id == "" {
		return models.Project{}, ErrInvalidProjectID
	}
	var project models.Project
	if err := s.api.Get(ctx, itemPath(id), &project); err != nil {
		return models.Project{}, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	return project, nil
}

// Create creates a new project with validation, stamping createdAt with the current time
func (s *service) Create(ctx context.Context, req CreateProjectRequest) (models.Project, error) {
	if req.Status == "" {
		req.Status = models.ProjectActive
	}
	if err := s.validateCreateProject(req); err != nil {
		return models.Project{}, err
	}

	body := struct {
		CreateProjectRequest
		CreatedAt string `json:"createdAt"`
	}{
		CreateProjectRequest: req,
		CreatedAt:            s.now().UTC().Format(time.RFC3339Nano),
	}

	var project models.Project
	if err := s.api.Post(ctx, resource, body, &project); err != nil {
		return models.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// Update sends the set fields of req and returns the server's representation
func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (models.Project, error) {
	if id == "" {
		return models.Project{}, ErrInvalidProjectID
	}

	// Validate fields if provided
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return models.Project{}, ErrEmptyName
	}
	if req.Name != nil && len(*req.Name) > 100 {
		return models.Project{}, ErrNameTooLong
	}
	if req.Status != nil && !slices.Contains(models.ProjectStatuses, *req.Status) {
		return models.Project{}, fmt.Errorf("%w %q", models.ErrInvalidStatus, *req.Status)
	}

	var project models.Project
	if err := s.api.Put(ctx, itemPath(id), req, &project); err != nil {
		return models.Project{}, fmt.Errorf("failed to update project %s: %w", id, err)
	}
	return project, nil
}

// Delete deletes a project
func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidProjectID
	}
	if err := s.api.Delete(ctx, itemPath(id)); err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return nil
}

// validateCreateProject validates a CreateProjectRequest
func (s *service) validateCreateProject(req CreateProjectRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyName
	}
	if len(req.Name) > 100 {
		return ErrNameTooLong
	}
	if !slices.Contains(models.ProjectStatuses, req.Status) {
		return fmt.Errorf("%w %q", models.ErrInvalidStatus, req.Status)
	}
	return nil
}

func itemPath(id string) string {
	return resource + "/" + url.PathEscape(id)
}
