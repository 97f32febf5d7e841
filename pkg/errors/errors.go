// Package errors provides structured error types for microviz.
//
// The chart engine distinguishes two tiers of failure. Recoverable problems
// (bad options, malformed data, non-finite coordinates) never surface as Go
// errors; they are reported as coded warnings on the render model (see
// package diag). Everything in this package is the fatal tier: caller or
// programmer mistakes such as an unknown chart type, plus I/O failures in the
// outer layers (input files, sinks, caches).
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - UNKNOWN_* / *_MISMATCH: dispatch contract violations
//   - INVALID_*: input document and flag validation failures
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownChartType, "unknown chart type %q", tag)
//	if errors.Is(err, errors.ErrCodeUnknownChartType) {
//	    // programmer error, no fallback rendering
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Dispatch contract errors
	ErrCodeUnknownChartType Code = "UNKNOWN_CHART_TYPE"
	ErrCodeSpecMismatch     Code = "SPEC_MISMATCH"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
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

// HTTPStatus maps an error code to the HTTP status the render endpoint
// should answer with. Unknown codes map to 500.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeUnknownChartType, ErrCodeSpecMismatch, ErrCodeInvalidInput, ErrCodeInvalidFormat:
		return 400
	case ErrCodeFileNotFound:
		return 404
	case ErrCodeUnsupported:
		return 501
	default:
		return 500
	}
}
