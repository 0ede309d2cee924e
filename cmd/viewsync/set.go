/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/viewsync/cmd"
	"github.com/cristianoliveira/viewsync/internal/browse"
	"github.com/cristianoliveira/viewsync/internal/colors"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
	"github.com/spf13/cobra"
)

type setClient interface {
	navigateClient
	SetLayout(id viewstate.InstanceID, layout viewpref.Layout) (viewpref.ViewState, error)
	SetShowThumb(id viewstate.InstanceID, show bool) (viewpref.ViewState, error)
	SetSortOption(id viewstate.InstanceID, by, direction string) (viewpref.ViewState, error)
	SetPageSize(id viewstate.InstanceID, n int) (viewpref.ViewState, error)
	SetGalleryWidth(id viewstate.InstanceID, n int) (viewpref.ViewState, error)
}

const setCommandLong = `Change one view setting of a location.

The location is resolved first, then the change is applied to the
session, written to the local cache and, when sync is enabled, sent to
the remote store before the command exits.

USAGE:
    viewsync set <setting> <value> [OPTIONS]

SETTINGS:
    layout         grid, list or gallery
    thumbs         on or off
    sort           <by> [asc|desc]
    page-size      number of entries per page
    gallery-width  width of gallery tiles in pixels

OPTIONS:
    -i, --instance NAME  File manager instance (main, selector or a number)
    -p, --path PATH      Location the setting applies to (default: cloudreve://my)
    -h, --help           Show this help

EXAMPLES:
    viewsync set layout gallery --path cloudreve://my/photos
    viewsync set sort size desc -p /docs`

// NewSetCmd creates the set command with explicit dependencies.
func NewSetCmd(client setClient) *cobra.Command {
	if client == nil {
		panic("NewSetCmd: client dependency cannot be nil")
	}

	setCmd := &cobra.Command{
		Use:   "set <setting> <value>",
		Short: "Change a view setting of a location",
		Long:  setCommandLong,
	}

	setCmd.AddCommand(
		newSettingCmd(client, "layout <grid|list|gallery>", "Set the layout", cobra.ExactArgs(1),
			func(id viewstate.InstanceID, args []string) (viewpref.ViewState, error) {
				layout, ok := viewpref.ParseLayout(strings.ToLower(args[0]))
				if !ok {
					return viewpref.ViewState{}, fmt.Errorf("invalid layout %q", args[0])
				}
				return client.SetLayout(id, layout)
			}),
		newSettingCmd(client, "thumbs <on|off>", "Show or hide thumbnails", cobra.ExactArgs(1),
			func(id viewstate.InstanceID, args []string) (viewpref.ViewState, error) {
				show, err := parseSwitch(args[0])
				if err != nil {
					return viewpref.ViewState{}, err
				}
				return client.SetShowThumb(id, show)
			}),
		newSettingCmd(client, "sort <by> [asc|desc]", "Set the sort order", cobra.RangeArgs(1, 2),
			func(id viewstate.InstanceID, args []string) (viewpref.ViewState, error) {
				direction := ""
				if len(args) == 2 {
					direction = strings.ToLower(args[1])
				}
				return client.SetSortOption(id, strings.ToLower(args[0]), direction)
			}),
		newSettingCmd(client, "page-size <n>", "Set the page size", cobra.ExactArgs(1),
			func(id viewstate.InstanceID, args []string) (viewpref.ViewState, error) {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return viewpref.ViewState{}, fmt.Errorf("invalid page size %q", args[0])
				}
				return client.SetPageSize(id, n)
			}),
		newSettingCmd(client, "gallery-width <px>", "Set the gallery tile width", cobra.ExactArgs(1),
			func(id viewstate.InstanceID, args []string) (viewpref.ViewState, error) {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return viewpref.ViewState{}, fmt.Errorf("invalid gallery width %q", args[0])
				}
				return client.SetGalleryWidth(id, n)
			}),
	)

	return setCmd
}

type settingFunc func(id viewstate.InstanceID, args []string) (viewpref.ViewState, error)

func newSettingCmd(client navigateClient, use, short string, args cobra.PositionalArgs, apply settingFunc) *cobra.Command {
	var t target
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := applySetting(cmd.Context(), client, &t, args, apply)
			if err != nil {
				return fmt.Errorf("%s: %w", cmd.CommandPath(), err)
			}
			colors.Success(fmt.Sprintf("%s applied to %s", cmd.CommandPath(), state.Path))
			fmt.Fprintln(cmd.OutOrStdout(), browse.RenderState(state))
			return nil
		},
	}
	t.register(c)
	return c
}

func applySetting(ctx context.Context, client navigateClient, t *target, args []string, apply settingFunc) (viewpref.ViewState, error) {
	id, _, err := t.resolve(ctx, client)
	if err != nil {
		return viewpref.ViewState{}, err
	}
	return apply(id, args)
}

func parseSwitch(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value %q: expected on or off", raw)
	}
}

// setCmd represents the set command
var setCmd = NewSetCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(setCmd)
}
