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
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
// The task is fetched first so the update carries its current fields.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string   { return "Flip a task between open and completed" }
func (c *ToggleCmd) Usage() string      { return "todoapp toggle <id>" }
func (c *ToggleCmd) NeedsService() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := parseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, code, ok := lookupTask(ctx, svc, id, errOut)
	if !ok {
		return code
	}

	s := store.New(svc)
	if err := s.ToggleCompletion(ctx, task); err != nil {
		return reportError(errOut, s.State(), err)
	}

	if !cfg.Quiet {
		output.FormatState(out, s.State())
	}
	return exitcode.Success
}
