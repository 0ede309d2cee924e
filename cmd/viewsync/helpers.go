package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/viewsync/internal/filemanager"
	"github.com/cristianoliveira/viewsync/internal/navigation"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
	"github.com/spf13/cobra"
)

type navigateClient interface {
	Navigate(ctx context.Context, id viewstate.InstanceID, location string) (navigation.Result, error)
}

// target is the instance and location a command acts on.
type target struct {
	instance string
	path     string
}

// register adds the --instance and --path flags to c.
func (t *target) register(c *cobra.Command) {
	c.Flags().StringVarP(&t.instance, "instance", "i", "main", "File manager instance (main, selector or a number)")
	c.Flags().StringVarP(&t.path, "path", "p", "", "Location to resolve first (default: "+viewpref.DefaultLocation+")")
}

// resolve parses the instance and navigates it to the target location so
// that the change applies on top of the merged remote and cached state.
func (t *target) resolve(ctx context.Context, client navigateClient) (viewstate.InstanceID, navigation.Result, error) {
	id, err := parseInstance(t.instance)
	if err != nil {
		return 0, navigation.Result{}, err
	}
	location := filemanager.InitialLocation(id, t.path, t.path)
	res, err := client.Navigate(ctx, id, location)
	if err != nil {
		if res.State.Path == "" {
			return id, res, err
		}
		errorHandler.Warn(fmt.Sprintf("listing unavailable: %v", err))
	}
	return id, res, nil
}

// parseInstance accepts "main", "selector" or a numeric id.
func parseInstance(raw string) (viewstate.InstanceID, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "main":
		return viewstate.MainInstance, nil
	case "selector":
		return viewstate.SelectorInstance, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid instance %q: expected main, selector or a number", raw)
	}
	return viewstate.InstanceID(n), nil
}
