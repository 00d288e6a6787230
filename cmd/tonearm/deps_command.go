package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tonearm/internal/deps"
	"tonearm/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external tools the pipeline depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := preflight.CheckSystemDeps(cfg)
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					if status.Optional {
						state = "missing (optional)"
					}
				}
				note := status.Description
				if status.Detail != "" {
					note = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, state, note})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Dependency", "Command", "Status", "Notes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if !deps.AllRequiredAvailable(statuses) {
				return fmt.Errorf("missing required dependencies")
			}
			return nil
		},
	}
}
