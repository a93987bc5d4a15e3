package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"flipbook/internal/config"
	"flipbook/internal/preflight"
	"flipbook/internal/queue"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show environment checks and queue health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				out := cmd.OutOrStdout()

				results := preflight.RunAll(cmd.Context(), cfg)
				rows := make([][]string, 0, len(results))
				for _, result := range results {
					state := "ok"
					if !result.Passed {
						state = "FAIL"
					}
					rows = append(rows, []string{result.Name, state, result.Detail})
				}
				fmt.Fprintln(out, "Environment")
				fmt.Fprintln(out, renderTable([]string{"Check", "State", "Detail"}, rows))

				depRows := make([][]string, 0, 1)
				for _, status := range preflight.CheckSystemDeps(cfg) {
					state := "ok"
					if !status.Available {
						state = "missing"
						if status.Optional {
							state = "missing (optional)"
						}
					}
					depRows = append(depRows, []string{status.Name, status.Command, state, status.Detail})
				}
				fmt.Fprintln(out, "Dependencies")
				fmt.Fprintln(out, renderTable([]string{"Name", "Command", "State", "Detail"}, depRows))

				health, err := store.Health(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Queue: %d total (%d pending, %d converting, %d failed, %d completed)\n",
					health.Total, health.Pending, health.Converting, health.Failed, health.Completed)

				if !preflight.AllPassed(results) {
					return fmt.Errorf("one or more environment checks failed")
				}
				return nil
			})
		},
	}
}
