// =============================================================================
// FILE: internal/apperrors/apperrors.go
// PURPOSE: Error kinds shared by every layer of the API
// =============================================================================
//
// Services, repositories and handlers return these typed errors instead of
// writing HTTP responses themselves. The error middleware is the only place
// that turns them into status codes (see internal/middleware/errors.go).
//
// Match them with errors.As, never with string comparison:
//
//	var nf *apperrors.NotFoundError
//	if errors.As(err, &nf) { ... }
// =============================================================================

package apperrors

import (
	"fmt"
)

// NotFoundError means an identifier has no corresponding persisted row.
// Field names the lookup key; empty means the primary id.
type NotFoundError struct {
	Resource string
	Field    string
	ID       any
}

// NewNotFoundError builds a NotFoundError for the given resource name and id
func NewNotFoundError(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewNotFoundByError builds a NotFoundError for a lookup by another field,
// e.g. "Category with name Books not found"
func NewNotFoundByError(resource, field string, value any) *NotFoundError {
	return &NotFoundError{Resource: resource, Field: field, ID: value}
}

func (e *NotFoundError) Error() string {
	field := e.Field
	if field == "" {
		field = "ID"
	}
	return fmt.Sprintf("%s with %s %v not found", e.Resource, field, e.ID)
}

// TypeMismatchError is raised when a path or query parameter cannot be
// parsed into the type the handler expects (e.g. GET /categories/abc)
type TypeMismatchError struct {
	Param    string
	Value    string
	Expected string
	Err      error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("failed to convert value %q of parameter '%s' to required type '%s': %v",
		e.Value, e.Param, e.Expected, e.Err)
}

func (e *TypeMismatchError) Unwrap() error {
	return e.Err
}

// ValidationError carries one message per invalid field of a request payload
type ValidationError struct {
	Details []string
}

// NewValidationError creates a ValidationError from the given messages
func NewValidationError(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 1 {
		return "validation failed: " + e.Details[0]
	}
	return fmt.Sprintf("validation failed: %d errors", len(e.Details))
}

// IncorrectResultSizeError means the store touched a different number of rows
// than an operation expected (e.g. an UPDATE by id affecting zero rows)
type IncorrectResultSizeError struct {
	Expected int64
	Actual   int64
}

func (e *IncorrectResultSizeError) Error() string {
	return fmt.Sprintf("incorrect result size: expected %d, actual %d", e.Expected, e.Actual)
}

// ConflictError wraps a constraint violation reported by the store
type ConflictError struct {
	Constraint string
	Code       string
	Message    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("constraint violation (%s): %s", e.Code, e.Message)
}
