// Package commands is the cobra.Command tree for the ruleflow CLI,
// grounded on the teacher's cmd/commands layout: one file per
// subcommand, a NewXCommand() constructor, wired into a root command.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = NewRootCommand()

// NewRootCommand builds the ruleflow root command and wires every
// subcommand onto it.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "ruleflow",
		Short: "Compile and inspect streaming boolean rules over metric samples",
	}
	root.AddCommand(NewBuildCommand())
	root.AddCommand(NewValidateCommand())
	root.AddCommand(NewMetricsCommand())
	root.AddCommand(NewVariablesCommand())
	root.AddCommand(NewComplexityCommand())
	return root
}

// Execute runs the root command, exiting the process with status 1 on
// any error (mirrors the teacher's main-package Execute wrapper).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
