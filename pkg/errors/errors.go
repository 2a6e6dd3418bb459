// Package errors provides structured error types for mastfig.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the layout engine, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The layout engine reports four structural failures:
//   - INVALID_CONFIG: the canvas cannot host a chart (non-positive size,
//     gutters that leave no room, inconsistent font bounds)
//   - INVALID_WEIGHTS: stage weights are negative or sum to zero
//   - INVALID_DISTRIBUTION: a supplied distribution has negative counts
//   - LAYOUT_OVERFLOW: the stacked rows do not fit the chart height
//
// Boundary layers (decoding, CLI, HTTP) add INVALID_INPUT, INVALID_FORMAT,
// INVALID_PRESET, NOT_FOUND and INTERNAL.
//
// None of these are retryable: the computation is deterministic, so the same
// input reproduces the same error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidWeights, "stage weights sum to %g", sum)
//	if errors.Is(err, errors.ErrCodeInvalidWeights) {
//	    // Handle bad weights
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout engine errors
	ErrCodeInvalidConfig       Code = "INVALID_CONFIG"
	ErrCodeInvalidWeights      Code = "INVALID_WEIGHTS"
	ErrCodeInvalidDistribution Code = "INVALID_DISTRIBUTION"
	ErrCodeLayoutOverflow      Code = "LAYOUT_OVERFLOW"

	// Boundary validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPreset Code = "INVALID_PRESET"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code,
// or any error exposing a Code() method such as *OverflowError.
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// coder is implemented by typed errors that carry a fixed code.
type coder interface {
	Code() Code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// OverflowError reports vertical content that does not fit the chart.
type OverflowError struct {
	Required  float64 // Pixels needed by the stacked rows
	Available float64 // Usable chart height
}

// Error implements the error interface.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s: rows need %.1fpx but the chart is %.1fpx tall", ErrCodeLayoutOverflow, e.Required, e.Available)
}

// Code returns the error code for this error type.
func (e *OverflowError) Code() Code {
	return ErrCodeLayoutOverflow
}

// Excess returns how many pixels are missing.
func (e *OverflowError) Excess() float64 {
	return e.Required - e.Available
}

// IsOverflow reports whether err is or wraps an *OverflowError.
func IsOverflow(err error) bool {
	var oe *OverflowError
	return errors.As(err, &oe)
}
