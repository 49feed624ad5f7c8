package models

import (
	"errors"
	"fmt"
)

// Validation error codes. The distinction between CodeRequired and
// CodeDanglingReference matters at the API boundary: the former is a client
// input bug, the latter a data-consistency bug.
const (
	CodeRequired          = "REQUIRED"
	CodeInvalid           = "INVALID"
	CodeOutOfRange        = "OUT_OF_RANGE"
	CodeInvalidRange      = "INVALID_RANGE"
	CodeDanglingReference = "DANGLING_REFERENCE"
)

// ValidationError reports a malformed or constraint-violating input.
// The HTTP layer uses errors.As to extract the offending field and code.
type ValidationError struct {
	Field   string // JSON field name, e.g. "working_hours"
	Code    string // one of the Code* constants
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// NewRequired reports a missing required field.
func NewRequired(field string) *ValidationError {
	return &ValidationError{Field: field, Code: CodeRequired, Message: "is required"}
}

// NewInvalid reports a field with an unusable value.
func NewInvalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Code: CodeInvalid, Message: message}
}

// NewOutOfRange reports a numeric field outside its allowed range.
func NewOutOfRange(field, message string) *ValidationError {
	return &ValidationError{Field: field, Code: CodeOutOfRange, Message: message}
}

// NewInvalidRange reports an inverted interval, e.g. a timeline that ends
// before it starts.
func NewInvalidRange(field, message string) *ValidationError {
	return &ValidationError{Field: field, Code: CodeInvalidRange, Message: message}
}

// NewDanglingReference reports a foreign key that does not resolve to an
// existing record.
func NewDanglingReference(field string, id int64) *ValidationError {
	return &ValidationError{
		Field:   field,
		Code:    CodeDanglingReference,
		Message: fmt.Sprintf("references missing record %d", id),
	}
}

// NotFoundError reports that a requested record does not exist.
type NotFoundError struct {
	Entity string // "person", "project", "assignment"
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError reports a delete blocked by existing references.
type ConflictError struct {
	Entity  string
	ID      int64
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Message)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
