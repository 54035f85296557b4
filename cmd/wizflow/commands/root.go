// Package commands implements the CLI commands for the wizflow batch driver.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/Hemant2A2/Wizflow/internal/app"
	"github.com/Hemant2A2/Wizflow/internal/build"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

// Application is the subset of *app.App the CLI layer depends on.
type Application interface {
	Run(ctx context.Context, path string, opts app.RunOptions) (domain.WorkflowStatus, error)
	Plan(ctx context.Context, path string) (map[string]bool, error)
}

// CLI represents the command line interface for wizflow.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	exitCode int
}

// New creates a new CLI instance wired to a.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "wizflow",
		Short:         "Run workflow blueprints: DAGs of shell, HTTP, and email tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	c := &CLI{app: a, rootCmd: rootCmd}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// ExitCode returns the process exit code decided by the last command run:
// 0 on success, 1 if the workflow reported any failed task.
func (c *CLI) ExitCode() int {
	return c.exitCode
}
