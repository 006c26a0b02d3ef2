package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("models: no matching record found")
	ErrUnauthenticated     = errors.New("models: authentication required")
	ErrForbidden           = errors.New("models: permission denied")
	ErrConflict            = errors.New("models: duplicate record")
	ErrInvalidStatus       = errors.New("models: invalid status")
	ErrInvalidReviewTarget = errors.New("models: review must target exactly one of agent, agency or property")
	ErrInvalidReference    = errors.New("models: referenced record does not exist")
	ErrStorageDisabled     = errors.New("models: object storage is not configured")
	ErrInvalidPage         = errors.New("models: invalid page")
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationError collects every field that failed validation so the client
// can fix them all in one round trip.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Add appends a field error and returns the receiver for chaining.
func (e *ValidationError) Add(field, code, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
	return e
}

// OrNil returns nil when no field errors were collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a ValidationError with one field.
func NewValidationError(field, code, message string) *ValidationError {
	return (&ValidationError{}).Add(field, code, message)
}
