package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a status-transition guard was violated, e.g. an
// approval was attempted on a record that is no longer Pending.
var ErrConflict = errors.New("conflicting record state")

// ErrForbidden indicates that the acting user lacks the scope or role required
// for the operation.
var ErrForbidden = errors.New("actor not permitted")

// ErrConsistency indicates that a referenced entity's lineage does not match
// its declared hierarchy level (e.g. a district that does not belong to the
// stated area).
var ErrConsistency = errors.New("hierarchy lineage inconsistent")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status code alongside a message and the underlying
// cause. Repositories use it to report infrastructure failures.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
