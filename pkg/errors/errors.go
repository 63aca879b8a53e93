// Package errors provides structured error types for archmodel.
//
// Every structural failure raised while building a workspace carries a
// machine-readable [Code], so callers can branch on the failure category
// without string matching:
//
//	_, err := m.AddContainer(id, "Web app", "Main UI", "Python")
//	if errors.Is(err, errors.ErrCodeUnknownParent) {
//	    // the software system was never registered
//	}
//
// # Error Codes
//
// Codes fall into three groups:
//   - Model errors: DUPLICATE_NAME, UNKNOWN_PARENT, UNKNOWN_ELEMENT,
//     DUPLICATE_VIEW_KEY, DUPLICATE_SECTION. These are returned by the call
//     that violates the invariant, never deferred to export time.
//   - Sink errors: SINK_ERROR, SINK_REJECTED, UNAUTHORIZED, NETWORK_ERROR,
//     TIMEOUT. Sinks produce these; [export.Publish] passes them through
//     unchanged.
//   - Input errors: INVALID_INPUT, INVALID_DEFINITION, INVALID_CONFIG.
//
// [export.Publish]: github.com/matzehuels/archmodel/pkg/export.Publish
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Model construction errors
	ErrCodeDuplicateName    Code = "DUPLICATE_NAME"
	ErrCodeUnknownParent    Code = "UNKNOWN_PARENT"
	ErrCodeUnknownElement   Code = "UNKNOWN_ELEMENT"
	ErrCodeDuplicateViewKey Code = "DUPLICATE_VIEW_KEY"
	ErrCodeDuplicateSection Code = "DUPLICATE_SECTION"

	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidDefinition Code = "INVALID_DEFINITION"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Sink errors
	ErrCodeSink         Code = "SINK_ERROR"
	ErrCodeSinkRejected Code = "SINK_REJECTED"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeTimeout      Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Is reports whether any *Error in err's chain has the given code. A
// definition error wrapping a duplicate name matches both
// INVALID_DEFINITION and DUPLICATE_NAME.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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

// IsSinkError reports whether err was produced by a sink (transport, auth or
// remote validation failure) rather than by model construction.
func IsSinkError(err error) bool {
	switch GetCode(err) {
	case ErrCodeSink, ErrCodeSinkRejected, ErrCodeUnauthorized, ErrCodeNetwork, ErrCodeTimeout:
		return true
	}
	return false
}
