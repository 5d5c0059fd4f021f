// Package errors provides custom error types for product-related operations.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")

	// ErrStorageWrite signals that the object store rejected or failed a write.
	ErrStorageWrite = errors.New("object storage write failed")
	// ErrStorageDelete signals a failed object removal. Callers treat it as
	// best-effort cleanup and must not abort their own operation because of it.
	ErrStorageDelete = errors.New("object storage delete failed")
)

// ValidationError reports a single offending field and a human-readable reason.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
