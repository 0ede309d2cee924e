/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"encoding/json"
	"fmt"

	"github.com/cristianoliveira/viewsync/cmd"
	"github.com/cristianoliveira/viewsync/internal/browse"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
	"github.com/spf13/cobra"
)

type showClient interface {
	navigateClient
	State(id viewstate.InstanceID) (viewpref.ViewState, error)
}

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(client showClient) *cobra.Command {
	if client == nil {
		panic("NewShowCmd: client dependency cannot be nil")
	}

	var (
		t      target
		format string
	)
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective view state",
		Long: `Show the effective view state of an instance.

Without --path only the local tiers (cache and defaults) are used. With
--path the location is resolved first, including the remote record.

USAGE:
    viewsync show [OPTIONS]

OPTIONS:
    -i, --instance NAME  File manager instance (main, selector or a number)
    -p, --path PATH      Location to resolve first
    --format FORMAT      Output format: panel or json (default: panel)
    -h, --help           Show this help`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "panel" && format != "json" {
				return fmt.Errorf("show: invalid format %q: expected panel or json", format)
			}
			var state viewpref.ViewState
			if t.path != "" {
				_, res, err := t.resolve(cmd.Context(), client)
				if err != nil {
					return fmt.Errorf("show: %w", err)
				}
				state = res.State
			} else {
				id, err := parseInstance(t.instance)
				if err != nil {
					return fmt.Errorf("show: %w", err)
				}
				if state, err = client.State(id); err != nil {
					return fmt.Errorf("show: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(viewpref.RecordFromState(state))
			}
			fmt.Fprintln(out, browse.RenderState(state))
			return nil
		},
	}
	t.register(showCmd)
	showCmd.Flags().StringVar(&format, "format", "panel", "Output format: panel or json")

	return showCmd
}

// showCmd represents the show command
var showCmd = NewShowCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(showCmd)
}
