package store

import "fmt"

type (
	// A DecodeError is raised when the persisted snapshot cannot be used.
	// It never leaves the store, hydration falls back to the seed dataset.
	DecodeError struct {
		Outcome Outcome
		Err     error
	}

	// A WriteError is raised when the snapshot cannot be persisted.
	// The in-memory list is kept, only future durability is affected.
	WriteError struct {
		Err error
	}
)

// Error implements error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s snapshot: %s", e.Outcome, e.Err)
}

// Cause returns the underlying error.
func (e *DecodeError) Cause() error {
	return e.Err
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Error implements error interface.
func (e *WriteError) Error() string {
	return "could not persist snapshot: " + e.Err.Error()
}

// Cause returns the underlying error.
func (e *WriteError) Cause() error {
	return e.Err
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}
