package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"todoapp/internal/config"
	"todoapp/internal/exitcode"
	"todoapp/internal/output"
	"todoapp/internal/service"
	"todoapp/internal/store"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

// SetDescription sets the description flag (for testing).
func (c *AddCmd) SetDescription(description string) {
	c.description = description
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "todoapp add [--description <text>] <title...>" }
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	s := store.New(svc)
	s.SetDraft(strings.Join(args, " "), c.description)

	if err := s.SubmitDraft(ctx); err != nil {
		return reportError(errOut, s.State(), err)
	}

	if !cfg.Quiet {
		output.FormatState(out, s.State())
	}
	return exitcode.Success
}
