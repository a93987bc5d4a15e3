package main

import (
	"github.com/spf13/cobra"

	"flipbook/internal/tui"
)

func newTUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive conversion form",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return tui.Run(cfg, newLogger(cfg))
		},
	}
}
