package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"resourceplanner/internal/models"
)

// CreatePerson inserts a new person and populates its ID.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO persons (name, working_hours) VALUES (?, ?)",
		person.Name, person.WorkingHours,
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read person id: %w", err)
	}
	person.ID = id
	return nil
}

// GetPerson retrieves a person by ID.
func (s *SQLiteStore) GetPerson(ctx context.Context, id int64) (*models.Person, error) {
	return getPerson(ctx, s.db, id)
}

func getPerson(ctx context.Context, q querier, id int64) (*models.Person, error) {
	person := &models.Person{}
	err := q.QueryRowContext(ctx,
		"SELECT id, name, working_hours FROM persons WHERE id = ?", id,
	).Scan(&person.ID, &person.Name, &person.WorkingHours)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "person", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// ListPersons retrieves all persons ordered by ID.
func (s *SQLiteStore) ListPersons(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, working_hours FROM persons ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	persons := make([]models.Person, 0)
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.WorkingHours); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate persons: %w", err)
	}
	return persons, nil
}

// UpdatePerson applies a sparse patch inside a transaction and returns the
// updated record.
func (s *SQLiteStore) UpdatePerson(ctx context.Context, id int64, patch models.PersonPatch) (*models.Person, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	person, err := getPerson(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := person.Apply(patch); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE persons SET name = ?, working_hours = ? WHERE id = ?",
		person.Name, person.WorkingHours, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update person: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return person, nil
}

// DeletePerson removes a person unless a project or assignment still
// references them; referenced persons produce a ConflictError.
func (s *SQLiteStore) DeletePerson(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := getPerson(ctx, tx, id); err != nil {
		return err
	}

	managing, err := rowExists(ctx, tx,
		"SELECT 1 FROM projects WHERE project_manager_id = ? LIMIT 1", id)
	if err != nil {
		return fmt.Errorf("failed to check managed projects: %w", err)
	}
	if managing {
		return &models.ConflictError{
			Entity:  "person",
			ID:      id,
			Message: "cannot delete: person manages existing projects",
		}
	}

	assigned, err := rowExists(ctx, tx,
		"SELECT 1 FROM assignments WHERE person_id = ? LIMIT 1", id)
	if err != nil {
		return fmt.Errorf("failed to check assignments: %w", err)
	}
	if assigned {
		return &models.ConflictError{
			Entity:  "person",
			ID:      id,
			Message: "cannot delete: person has existing assignments",
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM persons WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
