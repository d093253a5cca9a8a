package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"linkcleaner/internal/config"

	"github.com/spf13/cobra"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

func cleanCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <url>...",
		Short: "Prints the cleaned form of every given link, one per line",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			noResolve, _ := cmd.Flags().GetBool("no-resolve")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c := newCleaner(ctx, cfg, metricnoop.NewMeterProvider())
			for _, arg := range args {
				res := c.Clean(ctx, arg, !noResolve)
				fmt.Fprintln(cmd.OutOrStdout(), res.Output)
			}
		},
	}

	cmd.Flags().Bool("no-resolve", false, "Do not probe URL shorteners")

	return cmd
}
