package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"resourceplanner/internal/models"
)

// scanAssignment reads one assignment row, parsing the stored date strings.
func scanAssignment(row interface{ Scan(...any) error }) (*models.Assignment, error) {
	a := &models.Assignment{}
	var start, end string
	if err := row.Scan(&a.ID, &a.ProjectID, &a.PersonID, &a.AssignedHours, &start, &end); err != nil {
		return nil, err
	}

	var err error
	if a.TimelineStart, err = models.ParseDate(start); err != nil {
		return nil, fmt.Errorf("corrupt timeline_start: %w", err)
	}
	if a.TimelineEnd, err = models.ParseDate(end); err != nil {
		return nil, fmt.Errorf("corrupt timeline_end: %w", err)
	}
	return a, nil
}

// checkAssignmentRefs resolves both foreign keys of an assignment. It runs
// against the mutation's transaction so the referenced rows cannot vanish
// before commit.
func checkAssignmentRefs(ctx context.Context, q querier, a *models.Assignment) error {
	exists, err := rowExists(ctx, q, "SELECT 1 FROM projects WHERE id = ?", a.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if !exists {
		return models.NewDanglingReference("project_id", a.ProjectID)
	}

	exists, err = rowExists(ctx, q, "SELECT 1 FROM persons WHERE id = ?", a.PersonID)
	if err != nil {
		return fmt.Errorf("failed to check person: %w", err)
	}
	if !exists {
		return models.NewDanglingReference("person_id", a.PersonID)
	}
	return nil
}

// CreateAssignment inserts a new assignment and populates its ID. Both
// references are checked inside the same transaction as the insert.
func (s *SQLiteStore) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkAssignmentRefs(ctx, tx, assignment); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO assignments (project_id, person_id, assigned_hours, timeline_start, timeline_end)
		 VALUES (?, ?, ?, ?, ?)`,
		assignment.ProjectID, assignment.PersonID, assignment.AssignedHours,
		assignment.TimelineStart.String(), assignment.TimelineEnd.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read assignment id: %w", err)
	}
	assignment.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAssignment retrieves an assignment by ID.
func (s *SQLiteStore) GetAssignment(ctx context.Context, id int64) (*models.Assignment, error) {
	return getAssignment(ctx, s.db, id)
}

func getAssignment(ctx context.Context, q querier, id int64) (*models.Assignment, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, project_id, person_id, assigned_hours, timeline_start, timeline_end
		 FROM assignments WHERE id = ?`, id,
	)
	assignment, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "assignment", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return assignment, nil
}

// ListAssignments retrieves all assignments ordered by ID.
func (s *SQLiteStore) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	return s.listAssignments(ctx,
		`SELECT id, project_id, person_id, assigned_hours, timeline_start, timeline_end
		 FROM assignments ORDER BY id`)
}

// ListAssignmentsByProject retrieves the assignments under one project.
func (s *SQLiteStore) ListAssignmentsByProject(ctx context.Context, projectID int64) ([]models.Assignment, error) {
	return s.listAssignments(ctx,
		`SELECT id, project_id, person_id, assigned_hours, timeline_start, timeline_end
		 FROM assignments WHERE project_id = ? ORDER BY id`, projectID)
}

// ListAssignmentsByPerson retrieves the assignments held by one person.
func (s *SQLiteStore) ListAssignmentsByPerson(ctx context.Context, personID int64) ([]models.Assignment, error) {
	return s.listAssignments(ctx,
		`SELECT id, project_id, person_id, assigned_hours, timeline_start, timeline_end
		 FROM assignments WHERE person_id = ? ORDER BY id`, personID)
}

func (s *SQLiteStore) listAssignments(ctx context.Context, query string, args ...any) ([]models.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]models.Assignment, 0)
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, *assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return assignments, nil
}

// UpdateAssignment applies a sparse patch inside a transaction and returns
// the updated record. Changed references are re-resolved before commit.
func (s *SQLiteStore) UpdateAssignment(ctx context.Context, id int64, patch models.AssignmentPatch) (*models.Assignment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	assignment, err := getAssignment(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := assignment.Apply(patch); err != nil {
		return nil, err
	}

	if patch.ProjectID.Set || patch.PersonID.Set {
		if err := checkAssignmentRefs(ctx, tx, assignment); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE assignments
		 SET project_id = ?, person_id = ?, assigned_hours = ?, timeline_start = ?, timeline_end = ?
		 WHERE id = ?`,
		assignment.ProjectID, assignment.PersonID, assignment.AssignedHours,
		assignment.TimelineStart.String(), assignment.TimelineEnd.String(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return assignment, nil
}

// DeleteAssignment removes an assignment. Assignments are leaf records, so
// nothing cascades.
func (s *SQLiteStore) DeleteAssignment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM assignments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return &models.NotFoundError{Entity: "assignment", ID: id}
	}
	return nil
}
