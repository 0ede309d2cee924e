/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/viewsync/cmd"
	"github.com/spf13/cobra"
)

type metricsClient interface {
	navigateClient
	WriteMetrics(w io.Writer) error
}

// NewMetricsCmd creates the metrics command with explicit dependencies.
func NewMetricsCmd(client metricsClient) *cobra.Command {
	if client == nil {
		panic("NewMetricsCmd: client dependency cannot be nil")
	}

	var t target
	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print process metrics",
		Long: `Print the metrics collected by this process in the Prometheus text format.

With --path the location is resolved first, so the output shows the
remote fetch, cache and navigation counters of one resolution.

USAGE:
    viewsync metrics [OPTIONS]

OPTIONS:
    -i, --instance NAME  File manager instance (main, selector or a number)
    -p, --path PATH      Location to resolve first
    -h, --help           Show this help`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if t.path != "" {
				if _, _, err := t.resolve(cmd.Context(), client); err != nil {
					return fmt.Errorf("metrics: %w", err)
				}
			}
			return client.WriteMetrics(cmd.OutOrStdout())
		},
	}
	t.register(metricsCmd)

	return metricsCmd
}

// metricsCmd represents the metrics command
var metricsCmd = NewMetricsCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(metricsCmd)
}
