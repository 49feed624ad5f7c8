// Package capacity computes read-only load summaries over assignments. It
// reports how much work a person carries; it never judges feasibility or
// blocks a mutation.
package capacity

import "resourceplanner/internal/models"

// Load summarizes the assigned work for one person.
type Load struct {
	PersonID     int64  `json:"person_id"`
	PersonName   string `json:"person_name"`
	WorkingHours int    `json:"working_hours"`

	// AssignedHours is the sum of assigned_hours across all of the
	// person's assignments, regardless of timeline overlap.
	AssignedHours int `json:"assigned_hours"`

	// AssignmentCount is the number of assignments contributing.
	AssignmentCount int `json:"assignment_count"`

	// Utilization is AssignedHours divided by WorkingHours.
	Utilization float64 `json:"utilization"`
}

// ForPerson aggregates the person's assignments into a Load. Assignments
// belonging to other persons are ignored, so callers may pass unfiltered
// lists.
func ForPerson(person models.Person, assignments []models.Assignment) Load {
	load := Load{
		PersonID:     person.ID,
		PersonName:   person.Name,
		WorkingHours: person.WorkingHours,
	}

	for _, a := range assignments {
		if a.PersonID != person.ID {
			continue
		}
		load.AssignedHours += a.AssignedHours
		load.AssignmentCount++
	}

	if person.WorkingHours > 0 {
		load.Utilization = float64(load.AssignedHours) / float64(person.WorkingHours)
	}
	return load
}
