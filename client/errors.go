package client

import (
	"errors"

	sdkerrors "github.com/d8agroup/python-metalayer/client/internal/errors"
	"github.com/d8agroup/python-metalayer/client/internal/shardqueue"
)

// Re-export SDK errors so callers compare against a single symbol.
type (
	// InvalidInputError reports a caller-side problem found before any request.
	InvalidInputError = sdkerrors.InvalidInputError
	// RemoteServiceError reports a failed call: non-2xx status, transport
	// failure, non-success envelope or malformed body.
	RemoteServiceError = sdkerrors.RemoteServiceError
)

var (
	ErrInvalidInput  = sdkerrors.ErrInvalidInput
	ErrRemoteService = sdkerrors.ErrRemoteService

	// ErrBackPressure is returned when the batch executor's queue stays full.
	ErrBackPressure = shardqueue.ErrQueueFull
)

// IsInvalidInput reports whether err is an input validation error.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsRemoteService reports whether err came from the remote service or the
// transport to it.
func IsRemoteService(err error) bool { return errors.Is(err, ErrRemoteService) }

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int { return sdkerrors.StatusCode(err) }
