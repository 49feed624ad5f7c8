package models

// Assignment allocates a person to a project for a number of hours within a
// calendar timeline. It is the only many-to-many link between Person and
// Project: a person may hold assignments on several projects and a project
// may have several assigned persons.
type Assignment struct {
	ID int64 `json:"id"`

	// ProjectID references the project the work belongs to. An assignment
	// cannot outlive its project.
	ProjectID int64 `json:"project_id"`

	// PersonID references the person doing the work.
	PersonID int64 `json:"person_id"`

	// AssignedHours is the number of hours allocated over the timeline.
	AssignedHours int `json:"assigned_hours"`

	// TimelineStart and TimelineEnd bound the assignment;
	// TimelineStart never falls after TimelineEnd.
	TimelineStart Date `json:"timeline_start"`
	TimelineEnd   Date `json:"timeline_end"`
}

// Validate checks the assignment's field-level invariants. Whether the
// referenced project and person exist is the store's concern.
func (a *Assignment) Validate() error {
	if a.ProjectID <= 0 {
		return NewRequired("project_id")
	}
	if a.PersonID <= 0 {
		return NewRequired("person_id")
	}
	if a.AssignedHours <= 0 {
		return NewOutOfRange("assigned_hours", "must be a positive number")
	}
	if a.TimelineStart.IsZero() {
		return NewRequired("timeline_start")
	}
	if a.TimelineEnd.IsZero() {
		return NewRequired("timeline_end")
	}
	if a.TimelineStart.After(a.TimelineEnd) {
		return NewInvalidRange("timeline_start", "cannot be after timeline_end")
	}
	return nil
}

// AssignmentPatch is a sparse update for an Assignment. No field accepts an
// explicit null; reference changes are re-resolved by the store.
type AssignmentPatch struct {
	ProjectID     Field[int64] `json:"project_id"`
	PersonID      Field[int64] `json:"person_id"`
	AssignedHours Field[int]   `json:"assigned_hours"`
	TimelineStart Field[Date]  `json:"timeline_start"`
	TimelineEnd   Field[Date]  `json:"timeline_end"`
}

// Empty reports whether the patch names no fields at all.
func (p AssignmentPatch) Empty() bool {
	return !p.ProjectID.Set && !p.PersonID.Set && !p.AssignedHours.Set &&
		!p.TimelineStart.Set && !p.TimelineEnd.Set
}

// Apply merges the patch into the assignment and re-validates the result.
func (a *Assignment) Apply(patch AssignmentPatch) error {
	fields := []struct {
		name string
		set  bool
		null bool
	}{
		{"project_id", patch.ProjectID.Set, !patch.ProjectID.Valid},
		{"person_id", patch.PersonID.Set, !patch.PersonID.Valid},
		{"assigned_hours", patch.AssignedHours.Set, !patch.AssignedHours.Valid},
		{"timeline_start", patch.TimelineStart.Set, !patch.TimelineStart.Valid},
		{"timeline_end", patch.TimelineEnd.Set, !patch.TimelineEnd.Valid},
	}
	for _, f := range fields {
		if f.set && f.null {
			return NewInvalid(f.name, "must not be null")
		}
	}

	if patch.ProjectID.Set {
		a.ProjectID = patch.ProjectID.Value
	}
	if patch.PersonID.Set {
		a.PersonID = patch.PersonID.Value
	}
	if patch.AssignedHours.Set {
		a.AssignedHours = patch.AssignedHours.Value
	}
	if patch.TimelineStart.Set {
		a.TimelineStart = patch.TimelineStart.Value
	}
	if patch.TimelineEnd.Set {
		a.TimelineEnd = patch.TimelineEnd.Value
	}
	return a.Validate()
}
