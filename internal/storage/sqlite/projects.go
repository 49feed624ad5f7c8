package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"resourceplanner/internal/models"
)

// budgetCents converts an optional Money to its nullable column value.
func budgetCents(budget *models.Money) any {
	if budget == nil {
		return nil
	}
	return budget.Cents()
}

// scanProject reads one project row, mapping the nullable budget column.
func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	project := &models.Project{}
	var cents sql.NullInt64
	if err := row.Scan(&project.ID, &project.Name, &project.ProjectManagerID, &cents); err != nil {
		return nil, err
	}
	if cents.Valid {
		budget := models.MoneyFromCents(cents.Int64)
		project.Budget = &budget
	}
	return project, nil
}

// CreateProject inserts a new project and populates its ID. The manager
// reference is checked inside the same transaction as the insert.
func (s *SQLiteStore) CreateProject(ctx context.Context, project *models.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkManagerExists(ctx, tx, project.ProjectManagerID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO projects (name, project_manager_id, budget_cents) VALUES (?, ?, ?)",
		project.Name, project.ProjectManagerID, budgetCents(project.Budget),
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read project id: %w", err)
	}
	project.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func checkManagerExists(ctx context.Context, q querier, managerID int64) error {
	exists, err := rowExists(ctx, q, "SELECT 1 FROM persons WHERE id = ?", managerID)
	if err != nil {
		return fmt.Errorf("failed to check manager: %w", err)
	}
	if !exists {
		return models.NewDanglingReference("project_manager_id", managerID)
	}
	return nil
}

// GetProject retrieves a project by ID.
func (s *SQLiteStore) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	return getProject(ctx, s.db, id)
}

func getProject(ctx context.Context, q querier, id int64) (*models.Project, error) {
	row := q.QueryRowContext(ctx,
		"SELECT id, name, project_manager_id, budget_cents FROM projects WHERE id = ?", id,
	)
	project, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "project", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// ListProjects retrieves all projects ordered by ID.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.listProjects(ctx,
		"SELECT id, name, project_manager_id, budget_cents FROM projects ORDER BY id")
}

// ListProjectsByManager retrieves the projects managed by one person.
func (s *SQLiteStore) ListProjectsByManager(ctx context.Context, managerID int64) ([]models.Project, error) {
	return s.listProjects(ctx,
		"SELECT id, name, project_manager_id, budget_cents FROM projects WHERE project_manager_id = ? ORDER BY id",
		managerID)
}

func (s *SQLiteStore) listProjects(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

// UpdateProject applies a sparse patch inside a transaction and returns the
// updated record. A changed manager reference is re-resolved before commit.
func (s *SQLiteStore) UpdateProject(ctx context.Context, id int64, patch models.ProjectPatch) (*models.Project, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	project, err := getProject(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := project.Apply(patch); err != nil {
		return nil, err
	}

	if patch.ProjectManagerID.Set {
		if err := checkManagerExists(ctx, tx, project.ProjectManagerID); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE projects SET name = ?, project_manager_id = ?, budget_cents = ? WHERE id = ?",
		project.Name, project.ProjectManagerID, budgetCents(project.Budget), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project and every assignment under it in one
// transaction; an assignment cannot outlive its project.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := getProject(ctx, tx, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("failed to cascade assignments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
