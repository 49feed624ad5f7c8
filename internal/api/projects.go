package api

import (
	"log/slog"
	"net/http"

	"resourceplanner/internal/models"
)

type createProjectRequest struct {
	Name             *string       `json:"name"`
	ProjectManagerID *int64        `json:"project_manager_id"`
	Budget           *models.Money `json:"budget"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == nil {
		respondError(w, models.NewRequired("name"))
		return
	}
	if req.ProjectManagerID == nil {
		respondError(w, models.NewRequired("project_manager_id"))
		return
	}

	project := models.Project{
		Name:             *req.Name,
		ProjectManagerID: *req.ProjectManagerID,
		Budget:           req.Budget,
	}
	if err := project.Validate(); err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.CreateProject(r.Context(), &project); err != nil {
		respondError(w, err)
		return
	}

	view, err := s.views.Project(r.Context(), project)
	if err != nil {
		slog.Error("Failed to compose project view", "project_id", project.ID, "error", err)
		respondError(w, err)
		return
	}

	slog.Info("Project created",
		"project_id", project.ID,
		"name", project.Name,
		"manager_id", project.ProjectManagerID,
	)
	respondJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		slog.Error("ListProjects failed", "error", err)
		respondError(w, err)
		return
	}

	views, err := s.views.Projects(r.Context(), projects)
	if err != nil {
		slog.Error("Failed to compose project views", "error", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "project")
	if err != nil {
		respondError(w, err)
		return
	}

	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := s.views.Project(r.Context(), *project)
	if err != nil {
		slog.Error("Failed to compose project view", "project_id", id, "error", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "project")
	if err != nil {
		respondError(w, err)
		return
	}

	var patch models.ProjectPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}
	if patch.Empty() {
		respondError(w, models.NewInvalid("body", "no fields provided for update"))
		return
	}

	project, err := s.store.UpdateProject(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := s.views.Project(r.Context(), *project)
	if err != nil {
		slog.Error("Failed to compose project view", "project_id", id, "error", err)
		respondError(w, err)
		return
	}

	slog.Info("Project updated", "project_id", id)
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "project")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.DeleteProject(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Project deleted", "project_id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
}

func (s *Server) handleProjectAssignments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "project")
	if err != nil {
		respondError(w, err)
		return
	}

	// 404 for a missing parent, not an empty list.
	if _, err := s.store.GetProject(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	assignments, err := s.store.ListAssignmentsByProject(r.Context(), id)
	if err != nil {
		slog.Error("ListAssignmentsByProject failed", "project_id", id, "error", err)
		respondError(w, err)
		return
	}

	views, err := s.views.Assignments(r.Context(), assignments)
	if err != nil {
		slog.Error("Failed to compose assignment views", "project_id", id, "error", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}
