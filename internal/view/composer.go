// Package view assembles denormalized read models. Names for foreign keys
// are resolved from the store at read time and never persisted alongside
// the keys, so a rename is visible on the next read with no stale joins.
package view

import (
	"context"
	"fmt"

	"resourceplanner/internal/models"
	"resourceplanner/internal/storage"
)

// Project is a project annotated with its manager's name.
type Project struct {
	ID                 int64         `json:"id"`
	Name               string        `json:"name"`
	ProjectManagerID   int64         `json:"project_manager_id"`
	ProjectManagerName string        `json:"project_manager_name"`
	Budget             *models.Money `json:"budget"`
}

// Assignment is an assignment annotated with its project and person names.
type Assignment struct {
	ID            int64       `json:"id"`
	ProjectID     int64       `json:"project_id"`
	ProjectName   string      `json:"project_name"`
	PersonID      int64       `json:"person_id"`
	PersonName    string      `json:"person_name"`
	AssignedHours int         `json:"assigned_hours"`
	TimelineStart models.Date `json:"timeline_start"`
	TimelineEnd   models.Date `json:"timeline_end"`
}

// ManagerProject is one entry of the manager view: a managed project with
// its complete set of assignments nested inside.
type ManagerProject struct {
	Project
	Assignments []Assignment `json:"assignments"`
}

// Composer resolves foreign keys into denormalized views. It only reads;
// it never mutates the store.
type Composer struct {
	store storage.Store
}

// New creates a Composer over the given store.
func New(store storage.Store) *Composer {
	return &Composer{store: store}
}

// Project annotates one project with its manager's name.
func (c *Composer) Project(ctx context.Context, p models.Project) (*Project, error) {
	manager, err := c.store.GetPerson(ctx, p.ProjectManagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manager of project %d: %w", p.ID, err)
	}
	return &Project{
		ID:                 p.ID,
		Name:               p.Name,
		ProjectManagerID:   p.ProjectManagerID,
		ProjectManagerName: manager.Name,
		Budget:             p.Budget,
	}, nil
}

// Projects annotates a list of projects, resolving each manager once.
func (c *Composer) Projects(ctx context.Context, projects []models.Project) ([]Project, error) {
	names, err := c.personNames(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]Project, 0, len(projects))
	for _, p := range projects {
		views = append(views, Project{
			ID:                 p.ID,
			Name:               p.Name,
			ProjectManagerID:   p.ProjectManagerID,
			ProjectManagerName: names[p.ProjectManagerID],
			Budget:             p.Budget,
		})
	}
	return views, nil
}

// Assignment annotates one assignment with its project and person names.
func (c *Composer) Assignment(ctx context.Context, a models.Assignment) (*Assignment, error) {
	project, err := c.store.GetProject(ctx, a.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project of assignment %d: %w", a.ID, err)
	}
	person, err := c.store.GetPerson(ctx, a.PersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve person of assignment %d: %w", a.ID, err)
	}
	return &Assignment{
		ID:            a.ID,
		ProjectID:     a.ProjectID,
		ProjectName:   project.Name,
		PersonID:      a.PersonID,
		PersonName:    person.Name,
		AssignedHours: a.AssignedHours,
		TimelineStart: a.TimelineStart,
		TimelineEnd:   a.TimelineEnd,
	}, nil
}

// Assignments annotates a list of assignments, resolving names in bulk.
func (c *Composer) Assignments(ctx context.Context, assignments []models.Assignment) ([]Assignment, error) {
	personNames, err := c.personNames(ctx)
	if err != nil {
		return nil, err
	}
	projectNames, err := c.projectNames(ctx)
	if err != nil {
		return nil, err
	}
	return annotateAssignments(assignments, projectNames, personNames), nil
}

// ManagerProjects builds the manager view: the exact set of projects
// managed by managerID, each with the exact set of its assignments. A
// manager with no projects yields an empty slice; an unknown manager yields
// a NotFoundError.
func (c *Composer) ManagerProjects(ctx context.Context, managerID int64) ([]ManagerProject, error) {
	manager, err := c.store.GetPerson(ctx, managerID)
	if err != nil {
		return nil, err
	}

	projects, err := c.store.ListProjectsByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}

	personNames, err := c.personNames(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ManagerProject, 0, len(projects))
	for _, p := range projects {
		assignments, err := c.store.ListAssignmentsByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, ManagerProject{
			Project: Project{
				ID:                 p.ID,
				Name:               p.Name,
				ProjectManagerID:   p.ProjectManagerID,
				ProjectManagerName: manager.Name,
				Budget:             p.Budget,
			},
			Assignments: annotateAssignments(assignments, map[int64]string{p.ID: p.Name}, personNames),
		})
	}
	return result, nil
}

func annotateAssignments(assignments []models.Assignment, projectNames, personNames map[int64]string) []Assignment {
	views := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, Assignment{
			ID:            a.ID,
			ProjectID:     a.ProjectID,
			ProjectName:   projectNames[a.ProjectID],
			PersonID:      a.PersonID,
			PersonName:    personNames[a.PersonID],
			AssignedHours: a.AssignedHours,
			TimelineStart: a.TimelineStart,
			TimelineEnd:   a.TimelineEnd,
		})
	}
	return views
}

func (c *Composer) personNames(ctx context.Context) (map[int64]string, error) {
	persons, err := c.store.ListPersons(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(persons))
	for _, p := range persons {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (c *Composer) projectNames(ctx context.Context) (map[int64]string, error) {
	projects, err := c.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}
