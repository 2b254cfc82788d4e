package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"todoapp/internal/config"
	"todoapp/internal/exitcode"
	"todoapp/internal/output"
	"todoapp/internal/service"
	"todoapp/internal/store"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes       bool
	confirmer store.Confirmer
}

// SetConfirmer replaces the stdin prompt (for testing).
func (c *RmCmd) SetConfirmer(confirmer store.Confirmer) {
	c.confirmer = confirmer
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "todoapp rm [--yes] <id>" }
func (c *RmCmd) NeedsService() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := parseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	s := store.New(svc, store.WithConfirmer(c.confirm(errOut)))
	removed, err := s.RemoveTask(ctx, id)
	if err != nil {
		return reportError(errOut, s.State(), err)
	}
	if !removed {
		if !cfg.Quiet {
			fmt.Fprintln(out, "cancelled")
		}
		return exitcode.Success
	}

	if !cfg.Quiet {
		output.FormatState(out, s.State())
	}
	return exitcode.Success
}

func (c *RmCmd) confirm(errOut io.Writer) store.Confirmer {
	switch {
	case c.yes:
		return store.AlwaysConfirm
	case c.confirmer != nil:
		return c.confirmer
	default:
		return output.PromptConfirmer{In: os.Stdin, Out: errOut}
	}
}
