package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/url"

	"github.com/thenoetrevino/taskdeck/internal/models"
)

const resource = "/workers"

// Service defines all worker-related remote operations
type Service interface {
	GetAll(ctx context.Context) ([]models.Worker, error)
	Create(ctx context.Context, req CreateWorkerRequest) (models.Worker, error)
	Update(ctx context.Context, id string, req UpdateWorkerRequest) (models.Worker, error)
	Delete(ctx context.Context, id string) error
}

// CreateWorkerRequest carries the known fields plus any service-defined extras
type CreateWorkerRequest struct {
	Name   string
	Role   string
	Fields map[string]any
}

// MarshalJSON sends Fields flattened next to name and role. An empty role
// is left out.
func (r CreateWorkerRequest) MarshalJSON() ([]byte, error) {
	body := maps.Clone(r.Fields)
	if body == nil {
		body = map[string]any{}
	}
	body["name"] = r.Name
	if r.Role != "" {
		body["role"] = r.Role
	}
	return json.Marshal(body)
}

// UpdateWorkerRequest is a partial update. Nil pointers and absent
// Fields keys are not sent.
type UpdateWorkerRequest struct {
	Name   *string
	Role   *string
	Fields map[string]any
}

// MarshalJSON sends only the fields that are set
func (r UpdateWorkerRequest) MarshalJSON() ([]byte, error) {
	body := maps.Clone(r.Fields)
	if body == nil {
		body = map[string]any{}
	}
	if r.Name != nil {
		body["name"] = *r.Name
	}
	if r.Role != nil {
		body["role"] = *r.Role
	}
	return json.Marshal(body)
}

type transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

type service struct {
	api transport
}

// NewService creates a new worker service
func NewService(api transport) Service {
	return &service{api: api}
}

func (s *service) GetAll(ctx context.Context) ([]models.Worker, error) {
	var workers []models.Worker
	if err := s.api.Get(ctx, resource, &workers); err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, nil
}

func (s *service) Create(ctx context.Context, req CreateWorkerRequest) (models.Worker, error) {
	if err := checkReserved(req.Fields); err != nil {
		return models.Worker{}, err
	}
	var worker models.Worker
	if err := s.api.Post(ctx, resource, req, &worker); err != nil {
		return models.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return worker, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateWorkerRequest) (models.Worker, error) {
	if id == "" {
		return models.Worker{}, ErrInvalidWorkerID
	}
	if err := checkReserved(req.Fields); err != nil {
		return models.Worker{}, err
	}
	var worker models.Worker
	if err := s.api.Put(ctx, itemPath(id), req, &worker); err != nil {
		return models.Worker{}, fmt.Errorf("failed to update worker %s: %w", id, err)
	}
	return worker, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidWorkerID
	}
	if err := s.api.Delete(ctx, itemPath(id)); err != nil {
		return fmt.Errorf("failed to delete worker %s: %w", id, err)
	}
	return nil
}

// checkReserved keeps extras from shadowing id, name or role
func checkReserved(fields map[string]any) error {
	for _, k := range []string{"id", "name", "role"} {
		if _, ok := fields[k]; ok {
			return fmt.Errorf("%w: %q", ErrReservedField, k)
		}
	}
	return nil
}

func itemPath(id string) string {
	return resource + "/" + url.PathEscape(id)
}
