// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"todoapp/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty title, bad filter).
	UserError = 1

	// ConfigError indicates an unreadable or invalid configuration.
	ConfigError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// For maps an error returned by the store or service to an exit code.
func For(err error) int {
	switch {
	case err == nil:
		return Success
	case service.IsValidation(err):
		return UserError
	case service.IsRemote(err):
		return BackendError
	default:
		return UserError
	}
}
