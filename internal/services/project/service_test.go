package project

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// setupTestAPI starts a server that records requests and replies with respond
func setupTestAPI(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*api.Client, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.RequestURI()}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		requests = append(requests, rec)
		respond(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	return client, &requests
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ============================================================================
// TEST CASES
// ============================================================================

func TestGetAll(t *testing.T) {
	client, requests := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Project{
			{ID: "p1", Name: "X", Status: models.ProjectActive, CreatedAt: "2024-01-01"},
		})
	})

	projects, err := NewService(client).GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p1", projects[0].ID)
	assert.Equal(t, "GET", (*requests)[0].Method)
	assert.Equal(t, "/projects", (*requests)[0].Path)
}

func TestGetByID(t *testing.T) {
	client, requests := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Project{ID: "p 1", Name: "Spaced"})
	})

	project, err := NewService(client).GetByID(context.Background(), "p 1")
	require.NoError(t, err)
	assert.Equal(t, "Spaced", project.Name)
	assert.Equal(t, "/projects/p%201", (*requests)[0].Path)
}

func TestCreateProject_StampsCreatedAt(t *testing.T) {
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	client, requests := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, models.Project{
			ID: "p1", Name: "Test Project", Status: models.ProjectActive, CreatedAt: fixed.Format(time.RFC3339Nano),
		})
	})

	svc := NewService(client, WithClock(func() time.Time { return fixed }))
	result, err := svc.Create(context.Background(), CreateProjectRequest{
		Name:        "Test Project",
		Description: "Test Description",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", result.ID)

	require.Len(t, *requests, 1)
	body := (*requests)[0].Body
	assert.Equal(t, "POST", (*requests)[0].Method)
	assert.Equal(t, "Test Project", body["name"])
	assert.Equal(t, "Test Description", body["description"])
	assert.Equal(t, "Active", body["status"], "status defaults to Active")
	assert.Equal(t, "2024-05-06T07:08:09Z", body["createdAt"])
	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "tasksCount")
}

func TestCreateProject_Validation(t *testing.T) {
	client, requests := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	svc := NewService(client)

	longName := ""
	for i := 0; i < 101; i++ {
		longName += "a"
	}

	tests := []struct {
		name string
		req  CreateProjectRequest
		want error
	}{
		{"empty name", CreateProjectRequest{Name: "  "}, ErrEmptyName},
		{"name too long", CreateProjectRequest{Name: longName}, ErrNameTooLong},
		{"bad status", CreateProjectRequest{Name: "ok", Status: "Paused"}, models.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, *requests)
}

func TestUpdateProject_SendsOnlySetFields(t *testing.T) {
	client, requests := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Project{ID: "p1", Name: "X", Status: models.ProjectArchived})
	})

	status := models.ProjectArchived
	updated, err := NewService(client).Update(context.Background(), "p1", UpdateProjectRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectArchived, updated.Status)

	req := (*requests)[0]
	assert.Equal(t, "PUT", req.Method)
	assert.Equal(t, "/projects/p1", req.Path)
	assert.Equal(t, map[string]any{"status": "Archived"}, req.Body)
}

func TestDeleteProject(t *testing.T) {
	client, requests := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, NewService(client).Delete(context.Background(), "p1"))
	assert.Equal(t, "DELETE", (*requests)[0].Method)
	assert.Equal(t, "/projects/p1", (*requests)[0].Path)

	assert.ErrorIs(t, NewService(client).Delete(context.Background(), ""), ErrInvalidProjectID)
}

func TestTransportErrorsPropagate(t *testing.T) {
	client, requests := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db down"})
	})

	_, err := NewService(client).GetAll(context.Background())
	require.Error(t, err)

	var se *api.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Len(t, *requests, 1, "no retry")
}
