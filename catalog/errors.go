package catalog

import (
	"errors"
	"strings"
)

// Sentinel errors for catalog operations.
var (
	// ErrNotFound is returned when the target record does not exist.
	ErrNotFound = errors.New("catalog: not found")

	// ErrInUse is returned when a record cannot be deleted because other
	// records reference it.
	ErrInUse = errors.New("catalog: record is in use")

	// ErrInvalid is matched by every *ValidationError.
	ErrInvalid = errors.New("catalog: invalid input")

	// ErrConflict is returned when an insert keeps colliding with an
	// existing key after every retry, or the id sequence has no room left.
	ErrConflict = errors.New("catalog: conflicting record")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports rejected input before any statement is issued.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "catalog: invalid input: " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrInvalid) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
