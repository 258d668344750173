package errors

import "fmt"

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408: // Request Timeout
			return Recoverable
		case 429: // Too Many Requests
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// Unexpected status codes - be conservative and retry
		return Recoverable
	}
}

// NewHTTPError creates a classified error for a non-2xx response.
func NewHTTPError(operation string, statusCode int, body string, messages []string) *RemoteServiceError {
	return &RemoteServiceError{
		Operation:  operation,
		Category:   getHTTPErrorCategory(statusCode),
		StatusCode: statusCode,
		Messages:   messages,
		Body:       body,
		Underlying: fmt.Errorf("%s failed: HTTP %d", operation, statusCode),
	}
}

// NewServiceError reports a 2xx response whose envelope status is not "success".
// The service has answered deliberately, so the request is not retried.
func NewServiceError(operation string, statusCode int, status string, messages []string) *RemoteServiceError {
	return &RemoteServiceError{
		Operation:  operation,
		Category:   Irrecoverable,
		StatusCode: statusCode,
		Messages:   messages,
		Underlying: fmt.Errorf("%s: service status %q", operation, status),
	}
}

// NewNetworkError creates a classified error for network-level failures.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(operation string, err error) *RemoteServiceError {
	return &RemoteServiceError{
		Operation:  operation,
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

// NewDecodeError reports a response body that could not be parsed.
func NewDecodeError(operation string, statusCode int, body string, err error) *RemoteServiceError {
	return &RemoteServiceError{
		Operation:  operation,
		Category:   Irrecoverable,
		StatusCode: statusCode,
		Body:       body,
		Underlying: fmt.Errorf("%s decode: %w", operation, err),
	}
}

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}
