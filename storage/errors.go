/*
errors.go - Error taxonomy of the storage contract

PURPOSE:
  Every backend reports failures with the same sentinels so callers can map
  them to user-visible outcomes without knowing which backend answered.

SENTINELS (use with errors.Is):
  ErrNotFound             Update/Delete target does not exist
  ErrConflict             Uniqueness or restrict-on-delete violation
  ErrValidation           Malformed payload or dangling parent reference
  ErrUnsupported          Write against a read-only backend
  ErrUpstreamUnavailable  Proxy could not get a usable answer upstream

  Structured errors below carry context and unwrap to the sentinels.

SEE ALSO:
  - api/errors.go: HTTP status mapping
*/
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrValidation          = errors.New("validation failed")
	ErrUnsupported         = errors.New("operation not supported by this backend")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// NotFoundError names the missing row.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound returns a *NotFoundError for entity/id.
func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError names the violated unique key, e.g. "email" or
// "employeeId,date", or explains why a delete was refused.
type ConflictError struct {
	Entity     string
	Constraint string
	Reason     string
}

func (e *ConflictError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	case e.Constraint != "":
		return fmt.Sprintf("%s with the same %s already exists", e.Entity, e.Constraint)
	default:
		return fmt.Sprintf("%s conflicts with an existing row", e.Entity)
	}
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

func Conflict(entity, constraint string) error {
	return &ConflictError{Entity: entity, Constraint: constraint}
}

// InUse reports a delete blocked by rows that still reference the target.
func InUse(entity string, id int64, referencedBy string) error {
	return &ConflictError{Entity: entity, Reason: fmt.Sprintf("%d is still referenced by %s", id, referencedBy)}
}

// ValidationError lists the problems found in one payload.
type ValidationError struct {
	Entity   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid returns a *ValidationError with a single formatted problem.
func Invalid(entity, format string, args ...any) error {
	return &ValidationError{Entity: entity, Problems: []string{fmt.Sprintf(format, args...)}}
}

// MissingParent reports a reference to a parent row that does not exist.
func MissingParent(entity, field string, id int64) error {
	return Invalid(entity, "%s %d does not exist", field, id)
}

// UpstreamError describes a failed call to an external content API.
type UpstreamError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("upstream %s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("upstream %s failed", e.Op)
	}
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstreamUnavailable}
	}
	return []error{ErrUpstreamUnavailable, e.Err}
}

// Unsupported reports a write attempted on a read-only backend.
func Unsupported(op string) error {
	return fmt.Errorf("%s: %w", op, ErrUnsupported)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsClientError returns true if retrying the same call cannot succeed.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnsupported)
}
