// Package api exposes the HTTP/JSON surface for persons, projects and
// assignments. Handlers validate input against the domain models, delegate
// to the store, and annotate responses through the view composer.
package api

import (
	"net/http"

	"resourceplanner/internal/storage"
	"resourceplanner/internal/view"
)

// Server holds the handler dependencies.
type Server struct {
	store storage.Store
	views *view.Composer
}

// NewServer creates a Server backed by the given store.
func NewServer(store storage.Store) *Server {
	return &Server{
		store: store,
		views: view.New(store),
	}
}

// Routes registers every endpoint on a fresh mux and returns it. The
// caller may mount additional handlers (e.g. /metrics) before serving.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /persons", s.handleCreatePerson)
	mux.HandleFunc("GET /persons", s.handleListPersons)
	mux.HandleFunc("GET /persons/{id}", s.handleGetPerson)
	mux.HandleFunc("PUT /persons/{id}", s.handleUpdatePerson)
	mux.HandleFunc("DELETE /persons/{id}", s.handleDeletePerson)
	mux.HandleFunc("GET /persons/{id}/assignments", s.handlePersonAssignments)
	mux.HandleFunc("GET /persons/{id}/utilization", s.handlePersonUtilization)

	mux.HandleFunc("POST /projects", s.handleCreateProject)
	mux.HandleFunc("GET /projects", s.handleListProjects)
	mux.HandleFunc("GET /projects/{id}", s.handleGetProject)
	mux.HandleFunc("PUT /projects/{id}", s.handleUpdateProject)
	mux.HandleFunc("DELETE /projects/{id}", s.handleDeleteProject)
	mux.HandleFunc("GET /projects/{id}/assignments", s.handleProjectAssignments)

	mux.HandleFunc("POST /assignments", s.handleCreateAssignment)
	mux.HandleFunc("GET /assignments", s.handleListAssignments)
	mux.HandleFunc("GET /assignments/{id}", s.handleGetAssignment)
	mux.HandleFunc("PUT /assignments/{id}", s.handleUpdateAssignment)
	mux.HandleFunc("DELETE /assignments/{id}", s.handleDeleteAssignment)

	mux.HandleFunc("GET /project_manager/{id}/projects", s.handleManagerProjects)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
