package usecase

import (
	"errors"
	"fmt"
	"strings"

	"notesapi/utils"
)

// ErrNotFound is returned, wrapped with the requested ID, when no note has that ID.
var ErrNotFound = errors.New("note not found")

// ValidationError lists the payload fields that were missing or malformed.
type ValidationError struct {
	Fields []utils.FieldError
}

func NewValidationError(fields ...utils.FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Reason)
			continue
		}
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError reports a write rejected by a uniqueness rule.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// PersistenceError wraps a failure of the underlying store. Its message is not meant for clients.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
