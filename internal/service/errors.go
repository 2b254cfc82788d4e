package service

import (
	"errors"
	"fmt"
)

// ValidationError reports input rejected before any remote call was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RemoteError reports a failed remote call: a transport failure, a non-2xx
// status or an undecodable body.
type RemoteError struct {
	// Op names the logical operation, e.g. "list", "create".
	Op string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Body holds the raw error payload, if any.
	Body string

	Err error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: remote returned %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRemote reports whether err is or wraps a *RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
