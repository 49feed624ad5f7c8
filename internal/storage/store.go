// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"resourceplanner/internal/models"
)

// Store defines the interface for entity storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the API layer.
//
// Every mutation validates referential integrity and commits inside a
// single transaction: a foreign-key check can never pass against a record
// another request is concurrently deleting, and a failed validation leaves
// no partial record. Typed errors from the models package report failures:
// *models.NotFoundError for missing records, *models.ValidationError for
// dangling references, *models.ConflictError for blocked deletes.
type Store interface {
	// CreatePerson persists a new person and populates its ID.
	CreatePerson(ctx context.Context, person *models.Person) error

	// GetPerson retrieves a person by ID.
	GetPerson(ctx context.Context, id int64) (*models.Person, error)

	// ListPersons retrieves all persons ordered by ID.
	ListPersons(ctx context.Context) ([]models.Person, error)

	// UpdatePerson applies a sparse patch and returns the updated record.
	// Fields absent from the patch are left unchanged.
	UpdatePerson(ctx context.Context, id int64, patch models.PersonPatch) (*models.Person, error)

	// DeletePerson removes a person. The delete is rejected with a
	// *models.ConflictError while any project they manage or any
	// assignment referencing them exists.
	DeletePerson(ctx context.Context, id int64) error

	// CreateProject persists a new project and populates its ID. The
	// manager reference is resolved inside the transaction.
	CreateProject(ctx context.Context, project *models.Project) error

	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, id int64) (*models.Project, error)

	// ListProjects retrieves all projects ordered by ID.
	ListProjects(ctx context.Context) ([]models.Project, error)

	// ListProjectsByManager retrieves the projects managed by one person,
	// ordered by ID. The caller is responsible for checking that the
	// manager exists.
	ListProjectsByManager(ctx context.Context, managerID int64) ([]models.Project, error)

	// UpdateProject applies a sparse patch and returns the updated record.
	UpdateProject(ctx context.Context, id int64, patch models.ProjectPatch) (*models.Project, error)

	// DeleteProject removes a project and cascades to every assignment
	// referencing it, in the same transaction.
	DeleteProject(ctx context.Context, id int64) error

	// CreateAssignment persists a new assignment and populates its ID.
	// Both references are resolved inside the transaction.
	CreateAssignment(ctx context.Context, assignment *models.Assignment) error

	// GetAssignment retrieves an assignment by ID.
	GetAssignment(ctx context.Context, id int64) (*models.Assignment, error)

	// ListAssignments retrieves all assignments ordered by ID.
	ListAssignments(ctx context.Context) ([]models.Assignment, error)

	// ListAssignmentsByProject retrieves the assignments under one
	// project, ordered by ID.
	ListAssignmentsByProject(ctx context.Context, projectID int64) ([]models.Assignment, error)

	// ListAssignmentsByPerson retrieves the assignments held by one
	// person, ordered by ID.
	ListAssignmentsByPerson(ctx context.Context, personID int64) ([]models.Assignment, error)

	// UpdateAssignment applies a sparse patch and returns the updated
	// record.
	UpdateAssignment(ctx context.Context, id int64, patch models.AssignmentPatch) (*models.Assignment, error)

	// DeleteAssignment removes an assignment. Assignments are leaf
	// records; nothing cascades.
	DeleteAssignment(ctx context.Context, id int64) error

	// Close releases any resources held by the store.
	Close() error
}
