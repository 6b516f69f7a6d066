package scene

import (
	"errors"
	"fmt"
)

// ErrorCode identifies well-known scene error categories.
type ErrorCode string

const (
	ErrCodeSetup           ErrorCode = "SETUP_FAILED"
	ErrCodeInvalidViewport ErrorCode = "INVALID_VIEWPORT"
	ErrCodeInvalidConfig   ErrorCode = "INVALID_CONFIG"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeCancelled       ErrorCode = "CANCELLED"
	ErrCodeClosed          ErrorCode = "CLOSED"
)

// Error is a typed error enriched with contextual data.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// NewError constructs an Error with the supplied code and message.
func NewError(code ErrorCode, message string, cause error, context map[string]interface{}) *Error {
	return &Error{Code: code, Message: message, Cause: cause, Context: context}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches other scene errors by code and message.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

// HasCode reports whether err is a scene error carrying code.
func HasCode(err error, code ErrorCode) bool {
	var sceneErr *Error
	if !errors.As(err, &sceneErr) {
		return false
	}
	return sceneErr.Code == code
}

func setupError(component string, cause error) *Error {
	return NewError(ErrCodeSetup, component+" setup failed", cause, map[string]interface{}{
		"component": component,
	})
}
