package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"flipbook/internal/config"
	"flipbook/internal/notifications"
	"flipbook/internal/queue"
	"flipbook/internal/watch"
	"flipbook/internal/workflow"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and convert new frame sequences",
		Long: "Watch monitors the configured watch directory. Each subdirectory that " +
			"receives PNG frames is enqueued once writes settle, and a single worker " +
			"converts jobs in arrival order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				lock, err := watch.AcquireLock(cfg)
				if err != nil {
					return err
				}
				defer lock.Unlock()

				logger := newLogger(cfg)

				watcher, err := watch.NewWatcher(cfg, store, logger)
				if err != nil {
					return err
				}

				manager := workflow.NewManagerWithNotifier(cfg, store, logger, notifications.NewService(cfg))

				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				if err := watcher.Start(runCtx); err != nil {
					return err
				}
				defer watcher.Stop()

				if err := manager.Start(runCtx); err != nil {
					return err
				}
				defer manager.Stop()

				fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (output to %s). Press Ctrl+C to stop.\n",
					cfg.Paths.WatchDir, cfg.Paths.OutputDir)

				<-runCtx.Done()
				fmt.Fprintln(cmd.OutOrStdout(), "Shutting down")
				return nil
			})
		},
	}
}
