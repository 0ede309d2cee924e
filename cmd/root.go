/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/viewsync/internal/colors"
	"github.com/cristianoliveira/viewsync/internal/config"
	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "viewsync",
	Short:         "Per-folder view preferences for a remote file manager.",
	Long:          `Per-folder view preferences for a remote file manager.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Bootstrap()
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

// Bootstrap loads the configuration and starts logging.
func Bootstrap() error {
	config.Load()
	settings := config.Current()
	colors.SetDebug(settings.Debug)
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	return nil
}

func init() {
	// Set version for use in help output
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	// Subcommands keep cobra's help
	defaultHelp := RootCmd.HelpFunc()
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			defaultHelp(cmd, args)
			return
		}
		printHelpText(cmd)
	})
}

func printHelpText(cmd *cobra.Command) {
	commandOrder := []string{
		"navigate",
		"show",
		"set",
		"columns",
		"browse",
		"cache",
		"metrics",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-24s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`viewsync v%s

Per-folder view preferences for a remote file manager.

USAGE:
    viewsync [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
	fmt.Fprint(cmd.OutOrStdout(), helpText)
}
