package api

import (
	"log/slog"
	"net/http"

	"resourceplanner/internal/models"
)

type createAssignmentRequest struct {
	ProjectID     *int64       `json:"project_id"`
	PersonID      *int64       `json:"person_id"`
	AssignedHours *int         `json:"assigned_hours"`
	TimelineStart *models.Date `json:"timeline_start"`
	TimelineEnd   *models.Date `json:"timeline_end"`
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	required := []struct {
		name string
		ok   bool
	}{
		{"project_id", req.ProjectID != nil},
		{"person_id", req.PersonID != nil},
		{"assigned_hours", req.AssignedHours != nil},
		{"timeline_start", req.TimelineStart != nil},
		{"timeline_end", req.TimelineEnd != nil},
	}
	for _, f := range required {
		if !f.ok {
			respondError(w, models.NewRequired(f.name))
			return
		}
	}

	assignment := models.Assignment{
		ProjectID:     *req.ProjectID,
		PersonID:      *req.PersonID,
		AssignedHours: *req.AssignedHours,
		TimelineStart: *req.TimelineStart,
		TimelineEnd:   *req.TimelineEnd,
	}
	if err := assignment.Validate(); err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.CreateAssignment(r.Context(), &assignment); err != nil {
		respondError(w, err)
		return
	}

	view, err := s.views.Assignment(r.Context(), assignment)
	if err != nil {
		slog.Error("Failed to compose assignment view", "assignment_id", assignment.ID, "error", err)
		respondError(w, err)
		return
	}

	slog.Info("Assignment created",
		"assignment_id", assignment.ID,
		"project_id", assignment.ProjectID,
		"person_id", assignment.PersonID,
		"assigned_hours", assignment.AssignedHours,
	)
	respondJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := s.store.ListAssignments(r.Context())
	if err != nil {
		slog.Error("ListAssignments failed", "error", err)
		respondError(w, err)
		return
	}

	views, err := s.views.Assignments(r.Context(), assignments)
	if err != nil {
		slog.Error("Failed to compose assignment views", "error", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assignment")
	if err != nil {
		respondError(w, err)
		return
	}

	assignment, err := s.store.GetAssignment(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := s.views.Assignment(r.Context(), *assignment)
	if err != nil {
		slog.Error("Failed to compose assignment view", "assignment_id", id, "error", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assignment")
	if err != nil {
		respondError(w, err)
		return
	}

	var patch models.AssignmentPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}
	if patch.Empty() {
		respondError(w, models.NewInvalid("body", "no fields provided for update"))
		return
	}

	assignment, err := s.store.UpdateAssignment(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := s.views.Assignment(r.Context(), *assignment)
	if err != nil {
		slog.Error("Failed to compose assignment view", "assignment_id", id, "error", err)
		respondError(w, err)
		return
	}

	slog.Info("Assignment updated", "assignment_id", id)
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assignment")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.DeleteAssignment(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Assignment deleted", "assignment_id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "assignment deleted"})
}

func (s *Server) handleManagerProjects(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "person")
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := s.views.ManagerProjects(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
