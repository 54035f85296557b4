package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <blueprint.json>",
		Short: "Report which tasks would re-execute without running the workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirty, err := c.app.Plan(cmd.Context(), args[0])
			if err != nil {
				c.exitCode = 1
				return err
			}

			ids := make([]string, 0, len(dirty))
			for id, reexec := range dirty {
				if reexec {
					ids = append(ids, id)
				}
			}
			sort.Strings(ids)

			cmdo := cmd.OutOrStdout()
			if len(ids) == 0 {
				_, _ = fmt.Fprintln(cmdo, "no tasks would re-execute")
				return nil
			}
			for _, id := range ids {
				_, _ = fmt.Fprintln(cmdo, id)
			}
			return nil
		},
	}
}
