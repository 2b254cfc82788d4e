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
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todoapp help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range DefaultRegistry.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-20s %s\n", name, cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  todoapp                                            List all tasks
  todoapp list [common flags] [--filter <f>]         List tasks (all, completed, incomplete)
  todoapp add [common flags] [--description <text>] <title...>
  todoapp show [common flags] <id>
  todoapp toggle [common flags] <id>                 Flip completed (alias: done)
  todoapp rm [common flags] [--yes] <id>
  todoapp tui [common flags]                         Interactive terminal UI
  todoapp help
  todoapp version

Common flags:
  --config <dir>     Override config directory
  --base-url <url>   Override the task API base URL
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
