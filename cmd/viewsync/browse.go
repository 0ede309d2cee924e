/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/viewsync/cmd"
	"github.com/cristianoliveira/viewsync/internal/browse"
	"github.com/cristianoliveira/viewsync/internal/filemanager"
	"github.com/spf13/cobra"
)

// runProgram starts the interactive program. Tests replace it.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewBrowseCmd creates the browse command with explicit dependencies.
func NewBrowseCmd(client browse.Controller) *cobra.Command {
	if client == nil {
		panic("NewBrowseCmd: client dependency cannot be nil")
	}

	var instance string
	browseCmd := &cobra.Command{
		Use:   "browse [location]",
		Short: "Browse folders interactively",
		Long: `Browse folders interactively with per-folder view preferences.

KEYS:
    j/k      Move cursor
    enter    Open folder
    bksp     Parent folder
    v        Cycle layout
    s        Cycle sort order
    t        Toggle thumbnails
    +/-      Change page size
    [/]      Change gallery width
    r        Reload
    q        Quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInstance(instance)
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			location := ""
			if len(args) == 1 {
				location = args[0]
			}
			location = filemanager.InitialLocation(id, location, location)
			if err := runProgram(browse.NewModel(cmd.Context(), client, id, location)); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}
	browseCmd.Flags().StringVarP(&instance, "instance", "i", "main", "File manager instance (main, selector or a number)")

	return browseCmd
}

// browseCmd represents the browse command
var browseCmd = NewBrowseCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(browseCmd)
}
