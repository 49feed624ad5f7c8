package models

import "strings"

// Person represents someone who can manage projects or be assigned to them.
type Person struct {
	// ID is the store-assigned identifier. Ids are monotonic and never
	// reused, even after a delete.
	ID int64 `json:"id"`

	// Name is the person's display name.
	Name string `json:"name"`

	// WorkingHours is the person's nominal weekly capacity.
	WorkingHours int `json:"working_hours"`
}

// Validate checks the person's field-level invariants.
func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewInvalid("name", "must be a non-empty string")
	}
	if p.WorkingHours <= 0 {
		return NewOutOfRange("working_hours", "must be a positive number")
	}
	return nil
}

// PersonPatch is a sparse update for a Person. Absent fields leave the
// record untouched.
type PersonPatch struct {
	Name         Field[string] `json:"name"`
	WorkingHours Field[int]    `json:"working_hours"`
}

// Empty reports whether the patch names no fields at all.
func (p PersonPatch) Empty() bool {
	return !p.Name.Set && !p.WorkingHours.Set
}

// Apply merges the patch into the person and re-validates the result.
// Neither field accepts an explicit null.
func (p *Person) Apply(patch PersonPatch) error {
	if patch.Name.Set {
		if !patch.Name.Valid {
			return NewInvalid("name", "must not be null")
		}
		p.Name = strings.TrimSpace(patch.Name.Value)
	}
	if patch.WorkingHours.Set {
		if !patch.WorkingHours.Valid {
			return NewInvalid("working_hours", "must not be null")
		}
		p.WorkingHours = patch.WorkingHours.Value
	}
	return p.Validate()
}
