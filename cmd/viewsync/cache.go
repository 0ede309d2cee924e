/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"slices"

	"github.com/cristianoliveira/viewsync/cmd"
	"github.com/cristianoliveira/viewsync/internal/prefcache"
	"github.com/spf13/cobra"
)

type cacheClient interface {
	CacheGet(key string) (string, bool, error)
	CacheSet(key, value string) error
}

// NewCacheCmd creates the cache command with explicit dependencies.
func NewCacheCmd(client cacheClient) *cobra.Command {
	if client == nil {
		panic("NewCacheCmd: client dependency cannot be nil")
	}

	cacheCmd := &cobra.Command{
		Use:   "cache <subcommand>",
		Short: "Inspect the local preference cache",
		Long: `Inspect or edit the local preference cache.

The cache holds the last value of each setting across all folders and is
used when no remote record exists for a folder.

USAGE:
    viewsync cache get [key]
    viewsync cache set <key> <value>

KEYS:
    layout, show_thumb, sort_by, sort_direction, page_size,
    gallery_width, list_view_columns`,
	}

	getCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print cached values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := prefcache.Keys
			if len(args) == 1 {
				if err := checkCacheKey(args[0]); err != nil {
					return err
				}
				keys = args
			}
			for _, key := range keys {
				value, ok, err := client.CacheGet(key)
				if err != nil {
					return fmt.Errorf("cache get: %w", err)
				}
				if !ok {
					value = "<unset>"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", key, value)
			}
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a cached value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkCacheKey(args[0]); err != nil {
				return err
			}
			if err := client.CacheSet(args[0], args[1]); err != nil {
				return fmt.Errorf("cache set: %w", err)
			}
			return nil
		},
	}

	cacheCmd.AddCommand(getCmd, setCmd)
	return cacheCmd
}

func checkCacheKey(key string) error {
	if !slices.Contains(prefcache.Keys, key) {
		return fmt.Errorf("unknown cache key %q", key)
	}
	return nil
}

// cacheCmd represents the cache command
var cacheCmd = NewCacheCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(cacheCmd)
}
