package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard application error kinds. Services wrap these with context via
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation indicates input data failed validation rules.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate indicates an attempt to create a resource that already exists.
	ErrDuplicate = errors.New("resource already exists")

	// ErrInsufficientBalance indicates an application would draw more from a
	// prepayment, credit or document than it has remaining.
	ErrInsufficientBalance = errors.New("insufficient remaining balance")

	// ErrStateGuard indicates the operation is not allowed in the resource's
	// current state (e.g. voiding a paid document).
	ErrStateGuard = errors.New("operation not allowed in current state")

	// ErrInvariantViolation indicates input that would break a bookkeeping
	// invariant (unbalanced entries, mismatched totals).
	ErrInvariantViolation = errors.New("bookkeeping invariant violated")

	// ErrInternalConsistency indicates the books themselves are inconsistent.
	// This is a bug or data corruption, never a user mistake.
	ErrInternalConsistency = errors.New("internal consistency violation")

	// ErrInternal indicates an unexpected internal failure.
	ErrInternal = errors.New("internal error")
)

// AppError carries an error kind together with a human-readable message and an
// optional wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that satisfies errors.Is(err, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}
