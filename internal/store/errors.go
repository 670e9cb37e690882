package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., the same word added twice).
	ErrDuplicate = errors.New("entity already exists")

	// ErrUnsupportedVersion is returned when persisted state was written by
	// a newer (or unknown) schema version than this binary understands.
	ErrUnsupportedVersion = errors.New("unsupported store schema version")

	// ErrCorruptState is returned when persisted state cannot be decoded.
	ErrCorruptState = errors.New("corrupt store state")

	// Entity-specific variants

	// ErrWordNotFound indicates that the requested word does not exist in the store.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// ErrWordExists indicates that a record with the same normalized word
	// key already exists.
	ErrWordExists = fmt.Errorf("%w: word", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Backend   string // The backing implementation (e.g., "file", "sqlite")
	Operation string // The operation that failed (e.g., "load", "save")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s store %s failed: %s: %v", e.Backend, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s store %s failed: %s", e.Backend, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(backend, operation, message string, err error) *StoreError {
	return &StoreError{
		Backend:   backend,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
