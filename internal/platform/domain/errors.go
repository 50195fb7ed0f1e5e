package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an AppError for transport mapping.
type ErrorCode string

const (
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeBadRequest ErrorCode = "BAD_REQUEST"
	CodeConflict   ErrorCode = "CONFLICT"
	CodeInternal   ErrorCode = "INTERNAL"
)

// AppError is the error type returned by domain and application code.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == ""
}

// Sentinels usable with errors.Is.
var (
	ErrNotFound   = &AppError{Code: CodeNotFound}
	ErrBadRequest = &AppError{Code: CodeBadRequest}
	ErrConflict   = &AppError{Code: CodeConflict}
)

// NewNotFoundError reports a missing entity by its id.
func NewNotFoundError(entity string, id int64) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with id: %d not found", entity, id),
	}
}

// NewNotFoundErrorf builds a NotFound error with a formatted message.
func NewNotFoundErrorf(format string, args ...any) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Cause: cause}
}

// CodeOf returns the code of the first AppError in err's chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
