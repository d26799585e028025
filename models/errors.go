package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup by identifier or code finds nothing.
var ErrNotFound = errors.New("not found")

// ValidationError rejects malformed input to a mutator. State is left
// unchanged and the caller may re-prompt.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports a lifecycle operation attempted from the wrong
// order status. Usually it means two operators raced on the same order; the
// caller should re-fetch and show the current state.
type InvalidStateError struct {
	OrderID int
	Status  OrderStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("order %d is in status %q", e.OrderID, e.Status)
}

// PersistenceError reports a failed document read or write with enough
// context to diagnose a lost write.
type PersistenceError struct {
	Collection string
	Op         string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Collection, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
