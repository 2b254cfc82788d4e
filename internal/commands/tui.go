package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoapp/internal/config"
	"todoapp/internal/exitcode"
	"todoapp/internal/logging"
	"todoapp/internal/service"
	"todoapp/internal/ui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd implements the tui command.
type TUICmd struct{}

func (c *TUICmd) Name() string                   { return "tui" }
func (c *TUICmd) Aliases() []string              { return nil }
func (c *TUICmd) Synopsis() string               { return "Open the interactive task view" }
func (c *TUICmd) Usage() string                  { return "todoapp tui" }
func (c *TUICmd) NeedsService() bool             { return true }
func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// Console logging would draw over the alternate screen, so the TUI only
	// ever logs to the configured file.
	logger, closeLog, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	defer closeLog()
	ctx = logger.WithContext(ctx)

	if err := ui.Run(ctx, svc); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
