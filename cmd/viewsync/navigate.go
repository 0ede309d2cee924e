/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/viewsync/cmd"
	"github.com/cristianoliveira/viewsync/internal/browse"
	"github.com/spf13/cobra"
)

// NewNavigateCmd creates the navigate command with explicit dependencies.
func NewNavigateCmd(client navigateClient) *cobra.Command {
	if client == nil {
		panic("NewNavigateCmd: client dependency cannot be nil")
	}

	var t target
	navigateCmd := &cobra.Command{
		Use:   "navigate [location]",
		Short: "Resolve the view state of a location and list it",
		Long: `Resolve the effective view state of a location and list its entries.

The state merges the remote per-folder record (when sync is enabled), the
local cache and the built-in defaults.

USAGE:
    viewsync navigate [location] [OPTIONS]

OPTIONS:
    -i, --instance NAME  File manager instance (main, selector or a number)
    -h, --help           Show this help

EXAMPLES:
    viewsync navigate cloudreve://my/photos
    viewsync navigate /docs --instance selector`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				t.path = args[0]
			}
			_, res, err := t.resolve(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("navigate: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, browse.RenderState(res.State))
			if res.Listing == nil {
				return nil
			}
			fmt.Fprintf(out, "%d entries\n", len(res.Listing.Files))
			for _, f := range res.Listing.Files {
				name := f.Name
				if f.IsFolder() {
					name += "/"
				}
				fmt.Fprintln(out, "  "+name)
			}
			return nil
		},
	}
	navigateCmd.Flags().StringVarP(&t.instance, "instance", "i", "main", "File manager instance (main, selector or a number)")

	return navigateCmd
}

// navigateCmd represents the navigate command
var navigateCmd = NewNavigateCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(navigateCmd)
}
