// Package cli provides the command-line interface for devjournal.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/devjournal/internal/cli/commands"
	"github.com/ccollicutt/devjournal/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	commands.ExitCode = 0

	// Check if the first argument might be a plugin command
	if len(args) > 0 {
		potentialCommand := args[0]
		if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
			if !isBuiltinCommand(rootCmd, potentialCommand) {
				if pluginPath, err := plugins.FindPlugin(potentialCommand); err == nil {
					return plugins.Execute(pluginPath, args[1:])
				}
			}
		}
	}

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		// Check if this was an unknown command that could be a plugin
		if len(args) > 0 {
			potentialCommand := args[0]
			if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
				if !isBuiltinCommand(rootCmd, potentialCommand) {
					_, _ = fmt.Fprintln(stderr, plugins.FormatNotFoundError(potentialCommand))
					return 2
				}
			}
		}
		// SilenceErrors prevents Cobra from printing the error itself
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devjournal",
		Short: "Keep a development journal alongside your commits",
		Long: `devjournal keeps a markdown journal of your commits.

Write reflections while you work with "devjournal reflect". When you commit,
"devjournal record" appends an entry for the commit to today's journal file
and pulls in every reflection written since the previous commit, in
chronological order, whatever timezone each one was written in.

PLUGINS:
  devjournal supports plugins for extended functionality. Plugins are
  standalone binaries named devjournal-<command> that are automatically
  discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the devjournal binary
    2. ~/.devjournal/plugins/
    3. Anywhere in PATH

  The narrate plugin (devjournal-narrate) writes the prose sections of
  recorded entries. It receives the commit as JSON on stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(commands.FlagConfig, "", "Configuration file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolP(commands.FlagVerbose, "v", false, "Debug logging and detailed output")

	rootCmd.AddCommand(commands.NewRecordCommand())
	rootCmd.AddCommand(commands.NewReflectCommand())
	rootCmd.AddCommand(commands.NewDiscoverCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
