// Package errors defines the two failure kinds surfaced by the SDK and the
// recoverability classification used by batch retries.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is matched by every *InvalidInputError via errors.Is.
var ErrInvalidInput = stderrors.New("invalid input")

// ErrRemoteService is matched by every *RemoteServiceError via errors.Is.
var ErrRemoteService = stderrors.New("remote service error")

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 500 Internal Server Error, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, 400 Bad Request, a non-success envelope.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// InvalidInputError reports a caller-side problem detected before any
// request is sent.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// RemoteServiceError wraps a failed round trip: non-2xx status, transport
// failure, non-success envelope or an unparseable body.
type RemoteServiceError struct {
	Operation  string
	Category   ErrorCategory
	StatusCode int      // HTTP status code (0 for transport and decode failures)
	Messages   []string // error messages reported by the service, if any
	Body       string   // response body for debugging
	Underlying error
}

// Error implements the error interface.
func (e *RemoteServiceError) Error() string {
	var b strings.Builder
	b.WriteString(e.Operation)
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if len(e.Messages) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Messages, ". "))
	} else if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *RemoteServiceError) Unwrap() error { return e.Underlying }

// Is lets errors.Is(err, ErrRemoteService) match.
func (e *RemoteServiceError) Is(target error) bool { return target == ErrRemoteService }

// IsIrrecoverable returns true if the error should not be retried.
// Input errors are never worth retrying.
func IsIrrecoverable(err error) bool {
	var rse *RemoteServiceError
	if stderrors.As(err, &rse) {
		return rse.Category == Irrecoverable
	}
	return stderrors.Is(err, ErrInvalidInput)
}

// StatusCode extracts the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var rse *RemoteServiceError
	if stderrors.As(err, &rse) {
		return rse.StatusCode
	}
	return 0
}
