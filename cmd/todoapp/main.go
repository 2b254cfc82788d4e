// Package main is the entry point for the todoapp CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todoapp/internal/backend/todoapi"
	"todoapp/internal/cli"
	"todoapp/internal/commands"
	"todoapp/internal/config"
	"todoapp/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return todoapi.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
