// Package models defines the core domain models for the resource planner.
//
// # Models
//
//   - Person: someone who can manage projects or be assigned work
//   - Project: a unit of work with exactly one manager and an optional budget
//   - Assignment: a time-bounded allocation of a person to a project
//
// Relationships are held as integer foreign keys, never as pointers, to
// avoid circular references. Human-readable names for those keys
// (project_manager_name, project_name, person_name) are never stored on the
// models; the view package resolves them at read time.
//
// # Validation
//
// Each entity validates its own field-level invariants (non-empty name,
// positive hours, ordered timeline) via Validate. Referential invariants
// (does the manager exist?) belong to the store, which checks them inside
// the same transaction that commits the write.
//
// # Partial updates
//
// Updates are sparse patches, not whole-record replacements. Patch structs
// are built from Field values that distinguish "absent from the payload"
// from "explicitly null" from "set to a value", so a field omitted by the
// client is provably left untouched.
package models
