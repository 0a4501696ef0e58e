package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data or the resulting state failed a business-invariant check.
var ErrValidation = errors.New("validation conflict")

// ErrDuplicate indicates an idempotency key or request id collision.
var ErrDuplicate = errors.New("duplicate request")

// ErrForbidden indicates the actor lacks the role or ownership required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState indicates the operation is not legal in the current lifecycle state.
var ErrInvalidState = errors.New("invalid state")

// ErrUnavailable indicates a transient infrastructure failure that survived retries.
var ErrUnavailable = errors.New("service unavailable")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// Machine readable codes returned to clients.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidState       = "INVALID_STATE"
	CodeValidationConflict = "VALIDATION_CONFLICT"
	CodeDuplicateRequest   = "DUPLICATE_REQUEST"
	CodeUnavailable        = "UNAVAILABLE"
	CodeInternal           = "INTERNAL"
)

// AppError carries an HTTP-ish status, a message and the wrapped cause.
type AppError struct {
	Status  int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code maps an error chain to its machine readable code.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrInvalidState):
		return CodeInvalidState
	case errors.Is(err, ErrValidation):
		return CodeValidationConflict
	case errors.Is(err, ErrDuplicate):
		return CodeDuplicateRequest
	case errors.Is(err, ErrUnavailable):
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// Newf wraps a sentinel with a formatted message so errors.Is keeps working.
func Newf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
