// Package errors provides structured error types for pubkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the publishing pipeline
//   - Machine-readable error codes attached to every failed publish result
//   - Accumulated field lists for validation failures
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into two families:
//   - Local validation failures (INVALID_COORDINATE, INCOMPLETE_METADATA,
//     MISSING_PRIMARY_ARTIFACT, INVALID_CONFIG, DEPENDENCY_NOT_FOUND). These
//     abort a run before any network call.
//   - Per-target upload failures (TRANSIENT_UPLOAD_FAILURE, VERSION_CONFLICT,
//     INTEGRITY_FAILURE, UNAUTHORIZED, UPLOAD_REJECTED, CANCELLED). These are
//     attributed to one repository target and never abort the others.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCoordinate, "artifactId %q contains a path separator", id)
//	if errors.Is(err, errors.ErrCodeInvalidCoordinate) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransientUpload, origErr, "upload %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Local validation errors
	ErrCodeInvalidCoordinate      Code = "INVALID_COORDINATE"
	ErrCodeIncompleteMetadata     Code = "INCOMPLETE_METADATA"
	ErrCodeMissingPrimaryArtifact Code = "MISSING_PRIMARY_ARTIFACT"
	ErrCodeInvalidConfig          Code = "INVALID_CONFIG"
	ErrCodeInvalidInput           Code = "INVALID_INPUT"
	ErrCodeDependencyNotFound     Code = "DEPENDENCY_NOT_FOUND"

	// Per-target upload errors
	ErrCodeTransientUpload  Code = "TRANSIENT_UPLOAD_FAILURE"
	ErrCodeVersionConflict  Code = "VERSION_CONFLICT"
	ErrCodeIntegrityFailure Code = "INTEGRITY_FAILURE"
	ErrCodeUnauthorized     Code = "UNAUTHORIZED"
	ErrCodeUploadRejected   Code = "UPLOAD_REJECTED"
	ErrCodeCancelled        Code = "CANCELLED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code     // Machine-readable error code
	Message string   // Human-readable message
	Fields  []string // Offending fields, for accumulated validation failures
	Cause   error    // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s [%s]", msg, strings.Join(e.Fields, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
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

// WithFields creates an Error listing every offending field.
func WithFields(code Code, fields []string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Fields:  fields,
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

// GetFields returns the field list of the first *Error in the chain.
func GetFields(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if len(e.Fields) > 0 {
			return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
		}
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries one of the local validation codes.
// Validation failures indicate a configuration defect and are never retried.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidCoordinate, ErrCodeIncompleteMetadata, ErrCodeMissingPrimaryArtifact,
		ErrCodeInvalidConfig, ErrCodeInvalidInput, ErrCodeDependencyNotFound:
		return true
	}
	return false
}
