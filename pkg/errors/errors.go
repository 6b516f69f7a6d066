// Package errors holds the configuration error types shared by the config
// parser and its loaders.
package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every ParseError and ValidationError via errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ParseError is a configuration file that could not be read or decoded.
// Line is zero when the decoder did not report one.
type ParseError struct {
	Path string
	Line int
	Err  error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	return &ParseError{Path: path, Line: line, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	cause := "unreadable"
	if e.Err != nil {
		cause = e.Err.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, cause)
	}
	return fmt.Sprintf("%s: %s", e.Path, cause)
}

// Is reports ErrInvalidConfig.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError is a decoded configuration that breaks a rule. Field is
// the dotted YAML path of the offending key, e.g. "particles.count".
type ValidationError struct {
	Field   string
	Rule    string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// NewRuleError constructs a ValidationError for a failed validator rule.
func NewRuleError(field, rule, message string, err error) error {
	return &ValidationError{Field: field, Rule: rule, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Is reports ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
