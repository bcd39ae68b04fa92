// Package apperr defines the application error taxonomy:
//
//   - ValidationError: bad input shape or value, carries field messages
//   - ReferenceError: a dangling foreign key (parent row does not exist)
//   - StoreError: any failure reported by the database
//   - ErrNotFound: the requested row does not exist
//
// All of these are non-fatal; controllers map them to HTTP statuses and the
// view keeps its pre-mutation state.
package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound marks a lookup that matched no rows.
var ErrNotFound = errors.New("not found")

// ValidationError carries per-field messages for rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d field(s))", len(e.Fields))
}

// Validation builds a ValidationError from field → message pairs.
func Validation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ValidationField builds a single-field ValidationError.
func ValidationField(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// ReferenceError reports a missing parent row.
type ReferenceError struct {
	Entity string
	ID     uint
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Entity, e.ID)
}

// Reference builds a ReferenceError.
func Reference(entity string, id uint) *ReferenceError {
	return &ReferenceError{Entity: entity, ID: id}
}

// StoreError wraps a failure reported by the data store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError, translating GORM's record-not-found into
// ErrNotFound so callers can match with errors.Is. A nil err returns nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return &StoreError{Op: op, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsReference reports whether err is (or wraps) a ReferenceError.
func IsReference(err error) bool {
	var re *ReferenceError
	return errors.As(err, &re)
}
