package main

import (
	"fmt"
	"strings"

	"linkcleaner/pkg/domain"

	"github.com/spf13/cobra"
)

func tablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Prints the tracking parameters and shortener domains",
		Run: func(cmd *cobra.Command, args []string) {
			tables := domain.DefaultTables()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "tracking parameters:")
			fmt.Fprintln(out, "  "+strings.Join(tables.TrackingParams(), " "))
			fmt.Fprintln(out, "shorteners:")
			fmt.Fprintln(out, "  "+strings.Join(tables.Shorteners(), " "))
		},
	}
}
