// Package errors provides structured error types for the Archiva client.
//
// Every failure surfaced by a [archiva.Session] or by the CLI dispatcher
// carries a machine-readable [Code], so callers can branch on the failure
// category without string matching:
//
//   - CONNECTION_ERROR: host unreachable, timeout, or a malformed transport response
//   - AUTHENTICATION_FAILED: login rejected by the server
//   - NOT_AUTHENTICATED: query issued without a live session
//   - NOT_FOUND: package or version absent
//   - REMOTE_ERROR: any other non-success response (status and body attached)
//   - INVALID_INSTRUCTION: malformed CLI instruction
//   - INVALID_INPUT: argument validation failures
//
// # Usage
//
//	_, err := sess.VersionsList(ctx, "com.example", "lib")
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // no such package
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConnection, origErr, "GET %s", url)
//
// [archiva.Session]: github.com/matzehuels/archiva-cli/pkg/archiva.Session
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure categories of the client.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidInstruction Code = "INVALID_INSTRUCTION"

	// Transport errors
	ErrCodeConnection Code = "CONNECTION_ERROR"

	// Authentication errors
	ErrCodeAuthentication   Code = "AUTHENTICATION_FAILED"
	ErrCodeNotAuthenticated Code = "NOT_AUTHENTICATED"

	// Remote response errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeRemote   Code = "REMOTE_ERROR"
)

// Error is a structured error with a code and optional cause.
//
// StatusCode and Body are set when the error originates from an HTTP
// response; they are zero for local failures.
type Error struct {
	Code       Code   // Machine-readable error code
	Message    string // Human-readable message
	Cause      error  // Underlying error (optional)
	StatusCode int    // HTTP status returned by the server (0 if none)
	Body       string // Response body, possibly truncated (empty if none)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
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

// Response creates an Error describing a server response with the given
// status code and body.
func Response(code Code, status int, body string, format string, args ...any) *Error {
	return &Error{
		Code:       code,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: status,
		Body:       body,
	}
}

// Remote creates a REMOTE_ERROR carrying the server's status code and body.
func Remote(status int, body string, format string, args ...any) *Error {
	return Response(ErrCodeRemote, status, body, format, args...)
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
