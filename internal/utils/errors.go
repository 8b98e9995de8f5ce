package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

/*
   Typed errors for the rental domain. Controllers branch with
   errors.As to pick the HTTP status; services never swallow them.
*/

// ValidationError rejects malformed or out-of-range input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError signals that another record already satisfies the
// invariant (e.g. a second active lease on a room). The message names
// the conflicting record so the UI can explain it.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError: a referenced entity does not exist. Terminal.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// InvalidStateError: operation attempted on an entity in the wrong
// state (e.g. ending an already-ended lease).
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string { return e.Message }

func NewInvalidStateError(format string, args ...any) *InvalidStateError {
	return &InvalidStateError{Message: fmt.Sprintf(format, args...)}
}

// NegativeDeltaError: a meter ran backwards between two readings.
type NegativeDeltaError struct {
	Previous decimal.Decimal
	Current  decimal.Decimal
}

func (e *NegativeDeltaError) Error() string {
	return fmt.Sprintf(
		"negative delta: current reading %s cannot be less than previous reading %s",
		e.Current.String(), e.Previous.String(),
	)
}
