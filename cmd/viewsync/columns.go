/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/viewsync/cmd"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
	"github.com/spf13/cobra"
)

type columnsClient interface {
	navigateClient
	AddColumn(id viewstate.InstanceID, col viewpref.ColumnDescriptor) (viewpref.ViewState, error)
	MoveColumnUp(id viewstate.InstanceID, index int) (viewpref.ViewState, error)
	MoveColumnDown(id viewstate.InstanceID, index int) (viewpref.ViewState, error)
	RemoveColumn(id viewstate.InstanceID, index int) (viewpref.ViewState, error)
	ResizeColumn(id viewstate.InstanceID, index, width int) (viewpref.ViewState, error)
}

var columnTypes = map[string]viewpref.ColumnType{
	"name":       viewpref.ColumnName,
	"size":       viewpref.ColumnSize,
	"updated_at": viewpref.ColumnUpdatedAt,
	"created_at": viewpref.ColumnCreatedAt,
	"metadata":   viewpref.ColumnMetadata,
}

// NewColumnsCmd creates the columns command with explicit dependencies.
func NewColumnsCmd(client columnsClient) *cobra.Command {
	if client == nil {
		panic("NewColumnsCmd: client dependency cannot be nil")
	}

	columnsCmd := &cobra.Command{
		Use:   "columns <subcommand>",
		Short: "Edit the list layout columns",
		Long: `Edit the ordered column list used by the list layout.

Columns are addressed by their zero-based position. The list never
becomes empty and holds at most one column per type and metadata key.

USAGE:
    viewsync columns <subcommand> [OPTIONS]

SUBCOMMANDS:
    add <type>            Append a column (name, size, updated_at, created_at, metadata or a number)
    up <index>            Move a column one position up
    down <index>          Move a column one position down
    remove <index>        Remove a column
    resize <index> <px>   Set the width of a column

EXAMPLES:
    viewsync columns add metadata --key exif -p /photos
    viewsync columns resize 0 320`,
	}

	var (
		key   string
		width int
	)
	addCmd := newSettingCmd(client, "add <type>", "Append a column", cobra.ExactArgs(1),
		func(id viewstate.InstanceID, args []string) (viewpref.ViewState, error) {
			col, err := parseColumn(args[0], key, width)
			if err != nil {
				return viewpref.ViewState{}, err
			}
			return client.AddColumn(id, col)
		})
	addCmd.Flags().StringVar(&key, "key", "", "Metadata key of the column")
	addCmd.Flags().IntVar(&width, "width", 0, "Column width in pixels")

	columnsCmd.AddCommand(
		addCmd,
		newSettingCmd(client, "up <index>", "Move a column up", cobra.ExactArgs(1),
			indexed(client.MoveColumnUp)),
		newSettingCmd(client, "down <index>", "Move a column down", cobra.ExactArgs(1),
			indexed(client.MoveColumnDown)),
		newSettingCmd(client, "remove <index>", "Remove a column", cobra.ExactArgs(1),
			indexed(client.RemoveColumn)),
		newSettingCmd(client, "resize <index> <px>", "Resize a column", cobra.ExactArgs(2),
			func(id viewstate.InstanceID, args []string) (viewpref.ViewState, error) {
				index, err := parseIndex(args[0])
				if err != nil {
					return viewpref.ViewState{}, err
				}
				w, err := strconv.Atoi(args[1])
				if err != nil {
					return viewpref.ViewState{}, fmt.Errorf("invalid width %q", args[1])
				}
				return client.ResizeColumn(id, index, w)
			}),
	)

	return columnsCmd
}

func indexed(edit func(viewstate.InstanceID, int) (viewpref.ViewState, error)) settingFunc {
	return func(id viewstate.InstanceID, args []string) (viewpref.ViewState, error) {
		index, err := parseIndex(args[0])
		if err != nil {
			return viewpref.ViewState{}, err
		}
		return edit(id, index)
	}
}

func parseIndex(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid column index %q", raw)
	}
	return n, nil
}

func parseColumn(raw, key string, width int) (viewpref.ColumnDescriptor, error) {
	t, ok := columnTypes[strings.ToLower(raw)]
	if !ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return viewpref.ColumnDescriptor{}, fmt.Errorf("invalid column type %q", raw)
		}
		t = viewpref.ColumnType(n)
	}
	col := viewpref.ColumnDescriptor{Type: t}
	if key != "" {
		col.Props = &viewpref.ColumnProps{MetadataKey: key}
	}
	if width < 0 {
		return viewpref.ColumnDescriptor{}, fmt.Errorf("invalid width %d", width)
	}
	if width > 0 {
		col.Width = viewpref.Ptr(width)
	}
	return col, nil
}

// columnsCmd represents the columns command
var columnsCmd = NewColumnsCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(columnsCmd)
}
