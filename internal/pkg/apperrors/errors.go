package apperrors

import "errors"

// Sentinels the HTTP layer maps to status codes
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrValidationFailed      = errors.New("validation failed")

	// ErrPersistence means the change is applied in memory but was not written.
	ErrPersistence = errors.New("storage write failed")
	// ErrUnavailable means the storage backend refused the call without trying it.
	ErrUnavailable = errors.New("storage unavailable")
)

// Catalog errors
var (
	ErrCourseTypeNotFound      = NewResourceNotFoundError("course type not found")
	ErrCourseTypeAlreadyExists = NewConflictError("course type already exists")
	ErrCourseNotFound          = NewResourceNotFoundError("course not found")
	ErrCourseAlreadyExists     = NewConflictError("course already exists")
	ErrOfferingNotFound        = NewResourceNotFoundError("offering not found")
	ErrOfferingAlreadyExists   = NewConflictError("offering already exists")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrResourceAlreadyExists, Message: message}
}

// NewValidationError creates a new custom error for rejected input with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// CustomError pairs a sentinel with the message shown to the client.
type CustomError struct {
	Err     error
	Message string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}
