package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Hemant2A2/Wizflow/internal/app"
	"github.com/Hemant2A2/Wizflow/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <blueprint.json>",
		Short: "Run a workflow blueprint to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parallel, _ := cmd.Flags().GetBool("parallel")
			workers, _ := cmd.Flags().GetInt("workers")
			baseDir, _ := cmd.Flags().GetString("base-dir")

			status, err := c.app.Run(cmd.Context(), args[0], app.RunOptions{
				BaseDir:  baseDir,
				Parallel: parallel,
				Workers:  workers,
			})
			if err != nil {
				c.exitCode = 1
				return err
			}

			cmdo := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(cmdo, "workflow %s\n", status)
			if status == domain.WorkflowFailed {
				c.exitCode = 1
			}
			return nil
		},
	}
	cmd.Flags().Bool("parallel", false, "Run independent tasks concurrently")
	cmd.Flags().Int("workers", 0, "Worker pool size for --parallel (0 = graph max width)")
	cmd.Flags().String("base-dir", "", "Working directory for SHELL/RESTAPI artifacts (default runs/<name>_<version>)")
	return cmd
}
