package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a looptrack error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrDecodeFailure  ErrorCode = "DECODE_FAILURE"  // 500 (recovered internally, surfaced in logs only)
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// LoopError represents a structured error with code, status, and details.
type LoopError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *LoopError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for a missing or malformed field.
func NewInvalidRequest(msg string) *LoopError {
	return &LoopError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an absent record.
func NewNotFound(kind, id string) *LoopError {
	return &LoopError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, id),
		Details: map[string]any{"kind": kind, "id": id},
	}
}

// NewDecodeFailure creates a 500 error for a corrupt backing file.
// The store recovers from these by treating the collection as empty;
// the error exists so the recovery can be logged with context.
func NewDecodeFailure(collection string, err error) *LoopError {
	return &LoopError{
		Code:    ErrDecodeFailure,
		Status:  500,
		Message: fmt.Sprintf("collection %s is corrupt: %v", collection, err),
		Details: map[string]any{"collection": collection},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *LoopError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &LoopError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// From returns err as a LoopError, wrapping anything else as internal.
func From(err error) *LoopError {
	var lErr *LoopError
	if stderrors.As(err, &lErr) {
		return lErr
	}
	return NewInternal(err)
}

// Is checks if an error is a LoopError with the given code.
func Is(err error, code ErrorCode) bool {
	if lErr, ok := err.(*LoopError); ok {
		return lErr.Code == code
	}
	return false
}
