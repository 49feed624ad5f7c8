package api

import (
	"log/slog"
	"net/http"

	"resourceplanner/internal/capacity"
	"resourceplanner/internal/models"
)

// createPersonRequest uses pointer fields so a missing required field is
// distinguishable from a zero value.
type createPersonRequest struct {
	Name         *string `json:"name"`
	WorkingHours *int    `json:"working_hours"`
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req createPersonRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == nil {
		respondError(w, models.NewRequired("name"))
		return
	}
	if req.WorkingHours == nil {
		respondError(w, models.NewRequired("working_hours"))
		return
	}

	person := models.Person{Name: *req.Name, WorkingHours: *req.WorkingHours}
	if err := person.Validate(); err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.CreatePerson(r.Context(), &person); err != nil {
		slog.Error("CreatePerson failed", "error", err)
		respondError(w, err)
		return
	}

	slog.Info("Person created", "person_id", person.ID, "name", person.Name)
	respondJSON(w, http.StatusCreated, person)
}

func (s *Server) handleListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := s.store.ListPersons(r.Context())
	if err != nil {
		slog.Error("ListPersons failed", "error", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, persons)
}

func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "person")
	if err != nil {
		respondError(w, err)
		return
	}

	person, err := s.store.GetPerson(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, person)
}

func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "person")
	if err != nil {
		respondError(w, err)
		return
	}

	var patch models.PersonPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}
	if patch.Empty() {
		respondError(w, models.NewInvalid("body", "no fields provided for update"))
		return
	}

	person, err := s.store.UpdatePerson(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Person updated", "person_id", person.ID)
	respondJSON(w, http.StatusOK, person)
}

func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "person")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.DeletePerson(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Person deleted", "person_id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "person deleted"})
}

func (s *Server) handlePersonAssignments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "person")
	if err != nil {
		respondError(w, err)
		return
	}

	// 404 for a missing parent, not an empty list.
	if _, err := s.store.GetPerson(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	assignments, err := s.store.ListAssignmentsByPerson(r.Context(), id)
	if err != nil {
		slog.Error("ListAssignmentsByPerson failed", "person_id", id, "error", err)
		respondError(w, err)
		return
	}

	views, err := s.views.Assignments(r.Context(), assignments)
	if err != nil {
		slog.Error("Failed to compose assignment views", "person_id", id, "error", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handlePersonUtilization(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "person")
	if err != nil {
		respondError(w, err)
		return
	}

	person, err := s.store.GetPerson(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	assignments, err := s.store.ListAssignmentsByPerson(r.Context(), id)
	if err != nil {
		slog.Error("ListAssignmentsByPerson failed", "person_id", id, "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, capacity.ForPerson(*person, assignments))
}
