package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoapp/internal/config"
	"todoapp/internal/exitcode"
	"todoapp/internal/output"
	"todoapp/internal/service"
	"todoapp/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todoapp` (no args) and `todoapp list --filter <f>`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter flag (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "todoapp list [--filter all|completed|incomplete]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(service.FilterAll), "")
	fs.StringVar(&c.filter, "f", string(service.FilterAll), "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	raw := c.filter
	if raw == "" {
		raw = string(service.FilterAll)
	}
	filter, err := service.ParseFilter(raw)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	s := store.New(svc)
	if err := s.SetFilter(ctx, filter); err != nil {
		return reportError(errOut, s.State(), err)
	}

	output.FormatState(out, s.State())
	return exitcode.Success
}
