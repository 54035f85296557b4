// Package main is the entry point for the wizflow batch CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/joho/godotenv"

	"github.com/Hemant2A2/Wizflow/cmd/wizflow/commands"
	"github.com/Hemant2A2/Wizflow/internal/app"
	_ "github.com/Hemant2A2/Wizflow/internal/wiring"
)

// ComponentProvider returns the application components for the CLI.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	// Best-effort: SENDER_EMAIL/APP_PASSWORD may already be set by the
	// environment (CI, systemd) with no .env file present.
	_ = godotenv.Load()

	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, err
	}))
}

func run(ctx context.Context, args []string, stderr io.Writer, provider ComponentProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := provider(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return cli.ExitCode()
}
