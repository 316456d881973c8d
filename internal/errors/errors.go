// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrSnapshotNotLoaded indicates no catalogue snapshot has been loaded yet.
	ErrSnapshotNotLoaded = errors.New("catalogue snapshot not loaded")

	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Unwrap makes every ValidationError match ErrInvalidInput under errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// SnapshotError represents catalogue snapshot load failures with context.
type SnapshotError struct {
	Path string
	Err  error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot error (path=%s): %v", e.Path, e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// NewSnapshotError creates a new snapshot error.
func NewSnapshotError(path string, err error) *SnapshotError {
	return &SnapshotError{
		Path: path,
		Err:  err,
	}
}
