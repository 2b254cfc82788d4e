// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todoapp/internal/config"
	"todoapp/internal/exitcode"
	"todoapp/internal/service"
	"todoapp/internal/store"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsService returns true if the command talks to the remote resource.
	// Commands like help and version return false.
	NeedsService() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided.
	// svc is nil if NeedsService() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// reportError prints err and returns its exit code. Remote failures are
// shown with the fixed message the store recorded; details stay in the log.
func reportError(errOut io.Writer, st store.State, err error) int {
	if service.IsRemote(err) && st.ErrorMessage != "" {
		fmt.Fprintf(errOut, "error: %s\n", st.ErrorMessage)
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.For(err)
}

// parseTaskID extracts the single task id argument.
func parseTaskID(args []string) (service.TaskID, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("task id required")
	case 1:
		id := strings.TrimSpace(args[0])
		if id == "" {
			return "", fmt.Errorf("task id required")
		}
		return service.TaskID(id), nil
	default:
		return "", fmt.Errorf("too many arguments: expected one task id")
	}
}
