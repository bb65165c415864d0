package store

import (
	"context"

	"github.com/thenoetrevino/taskdeck/internal/cache"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/project"
)

const fetchProjectsError = "Failed to fetch projects"

// TaskCounter supplies per-project task counts
type TaskCounter interface {
	CountByProject() map[string]int
}

// ProjectStore is the reactive project collection
type ProjectStore struct {
	*Collection[models.Project]
	service project.Service
	tasks   TaskCounter
}

// NewProjectStore creates an empty project store. tasks feeds ProjectsWithCount
// and may be nil, in which case every count is 0.
func NewProjectStore(service project.Service, c *cache.Adapter, tasks TaskCounter, opts ...Option) *ProjectStore {
	return &ProjectStore{
		Collection: newCollection[models.Project](cache.KeyProjects, fetchProjectsError, c, opts),
		service:    service,
		tasks:      tasks,
	}
}

// Projects returns a copy of the project collection
func (s *ProjectStore) Projects() []models.Project {
	return s.Items()
}

// FetchAll loads projects, preferring the cached snapshot
func (s *ProjectStore) FetchAll(ctx context.Context) {
	s.fetchAll(ctx, s.service.GetAll)
}

// Refresh discards the cached snapshot and fetches from the remote
func (s *ProjectStore) Refresh(ctx context.Context) {
	s.refresh(ctx, s.service.GetAll)
}

// Add creates a project remotely and appends the server's copy
func (s *ProjectStore) Add(ctx context.Context, req project.CreateProjectRequest) (models.Project, error) {
	return s.add(ctx, func(ctx context.Context) (models.Project, error) {
		return s.service.Create(ctx, req)
	})
}

// Update applies req remotely and replaces the held entry with the response
func (s *ProjectStore) Update(ctx context.Context, id string, req project.UpdateProjectRequest) (models.Project, error) {
	return s.update(ctx, id, func(ctx context.Context) (models.Project, error) {
		return s.service.Update(ctx, id, req)
	})
}

// Delete removes a project remotely, then locally
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id, func(ctx context.Context) error {
		return s.service.Delete(ctx, id)
	})
}

// GetProjectByID returns the held project with id
func (s *ProjectStore) GetProjectByID(id string) (models.Project, bool) {
	return s.Find(id)
}

// ProjectsWithCount returns the projects with TasksCount taken from the
// task counter. The stored projects are not modified.
func (s *ProjectStore) ProjectsWithCount() []models.Project {
	projects := s.Items()

	var counts map[string]int
	if s.tasks != nil {
		counts = s.tasks.CountByProject()
	}
	for i := range projects {
		projects[i].TasksCount = counts[projects[i].ID]
	}
	return projects
}
