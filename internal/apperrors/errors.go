package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyApproved indicates the funding request has already been approved and credited.
var ErrAlreadyApproved = errors.New("funding request already approved")

// ErrAlreadyCredited indicates the funding request has already been credited to the merchant.
var ErrAlreadyCredited = errors.New("funding request already credited")

// ErrAlreadyRejected indicates the funding request was rejected and can no longer change.
var ErrAlreadyRejected = errors.New("funding request already rejected")

// ErrConcurrentModification indicates a compare-and-set lost a race.
// Callers should re-read and retry.
var ErrConcurrentModification = errors.New("concurrent modification")

// ErrStorage indicates an underlying durability failure.
var ErrStorage = errors.New("storage error")

// AppError carries an HTTP status code and an error kind alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
	kind    error
}

// NewAppError creates an AppError. A 5xx code is treated as a storage failure.
func NewAppError(code int, message string, err error) *AppError {
	var kind error
	switch {
	case code == http.StatusNotFound:
		kind = ErrNotFound
	case code == http.StatusBadRequest:
		kind = ErrValidation
	case code >= http.StatusInternalServerError:
		kind = ErrStorage
	}
	return &AppError{Code: code, Message: message, Err: err, kind: kind}
}

// NewNotFoundError creates a not-found AppError.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

// NewValidationError creates a validation AppError wrapping the cause, if any.
func NewValidationError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// NewStorageError wraps a driver or database failure.
func NewStorageError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the AppError against its kind sentinel.
func (e *AppError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

// IsRetryable reports whether err signals a benign race that the caller may retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
