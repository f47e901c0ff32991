package device

import (
	"errors"
	"fmt"
)

// ErrorType categorizes device operation failures.
type ErrorType int

const (
	// ErrTypeValidation indicates a malformed user-supplied argument,
	// detected before any I/O.
	ErrTypeValidation ErrorType = iota
	// ErrTypeTransport indicates a connection-level failure (refused,
	// unreachable, resolve failure).
	ErrTypeTransport
	// ErrTypeDecode indicates reply bytes that do not match the
	// expected frame shape.
	ErrTypeDecode
	// ErrTypeNoValidReply indicates the retry budget was exhausted
	// without ever observing a valid reply.
	ErrTypeNoValidReply
	// ErrTypeStateMismatch indicates a mutation's read-after-write
	// check disagreed with the requested value.
	ErrTypeStateMismatch
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeTransport:
		return "Transport Error"
	case ErrTypeDecode:
		return "Decode Error"
	case ErrTypeNoValidReply:
		return "No Valid Reply"
	case ErrTypeStateMismatch:
		return "State Mismatch"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is the typed error for all device operations.
//
// Transport and decode errors never escape an operation on their own;
// the retry loop absorbs them, and at most the last one travels along
// as the cause of a no-valid-reply failure. Callers therefore only see
// validation, no-valid-reply, and state-mismatch errors.
type Error struct {
	Type    ErrorType
	Message string
	Err     error // underlying cause, if any

	// Attempts is how many exchanges were made before giving up
	// (no-valid-reply errors only).
	Attempts int

	// Expected and Actual describe the disagreement for state-mismatch
	// errors.
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Type == ErrTypeStateMismatch:
		return fmt.Sprintf("%s: %s: requested %q but device reports %q", e.Type, e.Message, e.Expected, e.Actual)
	case e.Type == ErrTypeNoValidReply && e.Err != nil:
		return fmt.Sprintf("%s: %s after %d attempts (last failure: %v)", e.Type, e.Message, e.Attempts, e.Err)
	case e.Type == ErrTypeNoValidReply:
		return fmt.Sprintf("%s: %s after %d attempts", e.Type, e.Message, e.Attempts)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error.
func NewValidationError(format string, args ...interface{}) *Error {
	return &Error{Type: ErrTypeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewTransportError creates a connection-level error.
func NewTransportError(message string, err error) *Error {
	return &Error{Type: ErrTypeTransport, Message: message, Err: err}
}

// NewDecodeError creates a reply-shape error.
func NewDecodeError(message string, err error) *Error {
	return &Error{Type: ErrTypeDecode, Message: message, Err: err}
}

// NewNoValidReplyError creates a retry-budget-exhausted error. lastErr
// is the final absorbed transport or decode failure, if there was one.
func NewNoValidReplyError(message string, attempts int, lastErr error) *Error {
	return &Error{Type: ErrTypeNoValidReply, Message: message, Attempts: attempts, Err: lastErr}
}

// NewStateMismatchError creates a read-after-write disagreement error.
func NewStateMismatchError(message, expected, actual string) *Error {
	return &Error{Type: ErrTypeStateMismatch, Message: message, Expected: expected, Actual: actual}
}

func isType(err error, t ErrorType) bool {
	var devErr *Error
	if errors.As(err, &devErr) {
		return devErr.Type == t
	}
	return false
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool { return isType(err, ErrTypeValidation) }

// IsNoValidReplyError checks if an error is a retry-budget-exhausted error.
func IsNoValidReplyError(err error) bool { return isType(err, ErrTypeNoValidReply) }

// IsStateMismatchError checks if an error is a read-after-write mismatch.
func IsStateMismatchError(err error) bool { return isType(err, ErrTypeStateMismatch) }

// GetShortErrorMessage returns a concise, operator-facing message.
// "Device unreachable" and "device not obeying" render distinctly so
// operators know which problem they have.
func GetShortErrorMessage(err error) string {
	var devErr *Error
	if !errors.As(err, &devErr) {
		return err.Error()
	}

	switch devErr.Type {
	case ErrTypeValidation:
		return devErr.Message
	case ErrTypeNoValidReply:
		return fmt.Sprintf("No valid reply from device after %d attempts - check address and cabling", devErr.Attempts)
	case ErrTypeStateMismatch:
		return fmt.Sprintf("Device did not apply the change: requested %q, device reports %q", devErr.Expected, devErr.Actual)
	case ErrTypeTransport:
		return "Cannot reach device - check network connection"
	case ErrTypeDecode:
		return "Device reply did not match the expected format"
	default:
		return devErr.Message
	}
}
