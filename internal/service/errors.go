package service

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/trackops/itam/internal/models"
)

// ValidationError means the input itself is malformed (e.g. empty name).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError means a uniqueness constraint would be violated.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// NotFoundError means the referenced entity does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// PermissionError means the acting user lacks the required capability.
type PermissionError struct {
	Msg string
}

func (e *PermissionError) Error() string { return e.Msg }

// InvalidStateError means the operation is illegal in the asset's current
// lifecycle state. Current carries that state for diagnostics.
type InvalidStateError struct {
	Msg     string
	Current models.Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s. Current status: %s", e.Msg, e.Current)
}

func notFound(id int) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf("asset with ID %d not found", id)}
}

func serialConflict(serialNumber string) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf("an asset with serial number '%s' already exists", serialNumber)}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
