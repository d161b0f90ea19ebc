package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors. Inbound handlers map them to HTTP statuses; the
// sample-api adapter maps downstream statuses onto them.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
	ErrTimeout     = errors.New("timeout")
)

// ValidationError carries per-field failures and matches ErrValidation with
// errors.Is.
//
// Field keys may carry a location prefix ("query.ids", "header.X-Time-Zone",
// "path.id"); unprefixed keys refer to the request body.
type ValidationError struct {
	Fields map[string]string
}

// NewFieldError returns a ValidationError for a single field.
func NewFieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// At returns a copy whose field keys are prefixed with loc, e.g. "query".
func (e *ValidationError) At(loc string) *ValidationError {
	fields := make(map[string]string, len(e.Fields))
	for k, v := range e.Fields {
		fields[loc+"."+k] = v
	}
	return &ValidationError{Fields: fields}
}

// Error lists field failures sorted by field name.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	slices.Sort(parts)
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
