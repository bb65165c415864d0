package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.repo.Projects.GetAll(r.Context())
	if err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.repo.Projects.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if err := decodeBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Status == "" {
		p.Status = models.ProjectActive
	}
	if msg := validateProject(&p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if p.CreatedAt == "" {
		p.CreatedAt = s.now().UTC().Format(time.RFC3339Nano)
	}

	created, err := s.repo.Projects.Create(r.Context(), p)
	if err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch map[string]json.RawMessage
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	current, err := s.repo.Projects.GetByID(r.Context(), id)
	if err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	updated, err := merge(current, patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateProject(&updated); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.repo.Projects.Update(r.Context(), updated); err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateProject checks required fields and rewrites the status to its
// canonical spelling
func validateProject(p *models.Project) string {
	if strings.TrimSpace(p.Name) == "" {
		return "name is required"
	}
	status, err := models.ParseProjectStatus(string(p.Status))
	if err != nil {
		return err.Error()
	}
	p.Status = status
	return ""
}
