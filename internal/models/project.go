package models

import "strings"

// Project represents a unit of work with exactly one manager.
type Project struct {
	ID int64 `json:"id"`

	// Name is the project's display name.
	Name string `json:"name"`

	// ProjectManagerID references the Person managing this project.
	// Every project has exactly one manager.
	ProjectManagerID int64 `json:"project_manager_id"`

	// Budget is the allocated budget, if any. Serialized as a decimal
	// string; nil means no budget has been set.
	Budget *Money `json:"budget"`
}

// Validate checks the project's field-level invariants. Whether the manager
// actually exists is the store's concern.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewInvalid("name", "must be a non-empty string")
	}
	if p.ProjectManagerID <= 0 {
		return NewRequired("project_manager_id")
	}
	return nil
}

// ProjectPatch is a sparse update for a Project. Budget is the only field
// that accepts an explicit null, which clears it.
type ProjectPatch struct {
	Name             Field[string] `json:"name"`
	ProjectManagerID Field[int64]  `json:"project_manager_id"`
	Budget           Field[Money]  `json:"budget"`
}

// Empty reports whether the patch names no fields at all.
func (p ProjectPatch) Empty() bool {
	return !p.Name.Set && !p.ProjectManagerID.Set && !p.Budget.Set
}

// Apply merges the patch into the project and re-validates the result.
func (p *Project) Apply(patch ProjectPatch) error {
	if patch.Name.Set {
		if !patch.Name.Valid {
			return NewInvalid("name", "must not be null")
		}
		p.Name = strings.TrimSpace(patch.Name.Value)
	}
	if patch.ProjectManagerID.Set {
		if !patch.ProjectManagerID.Valid {
			return NewInvalid("project_manager_id", "must not be null")
		}
		p.ProjectManagerID = patch.ProjectManagerID.Value
	}
	if patch.Budget.Set {
		if patch.Budget.Valid {
			budget := patch.Budget.Value
			p.Budget = &budget
		} else {
			p.Budget = nil
		}
	}
	return p.Validate()
}
