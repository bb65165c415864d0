package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	var (
		tasks []models.Task
		err   error
	)
	if projectID := r.URL.Query().Get("projectId"); projectID != "" {
		tasks, err = s.repo.Tasks.GetByProject(r.Context(), projectID)
	} else {
		tasks, err = s.repo.Tasks.GetAll(r.Context())
	}
	if err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.repo.Tasks.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var t models.Task
	if err := decodeBody(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if t.Status == "" {
		t.Status = models.TaskToDo
	}
	if msg := validateTask(&t); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := s.repo.Tasks.Create(r.Context(), t)
	if err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch map[string]json.RawMessage
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	current, err := s.repo.Tasks.GetByID(r.Context(), id)
	if err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	updated, err := merge(current, patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateTask(&updated); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.repo.Tasks.Update(r.Context(), updated); err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateTask checks required fields and rewrites the status to its
// canonical spelling. projectId is not checked against existing projects.
func validateTask(t *models.Task) string {
	if strings.TrimSpace(t.Name) == "" {
		return "name is required"
	}
	if strings.TrimSpace(t.ProjectID) == "" {
		return "projectId is required"
	}
	status, err := models.ParseTaskStatus(string(t.Status))
	if err != nil {
		return err.Error()
	}
	t.Status = status
	return ""
}
