package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mehrshadshams/reactive/pkg/engine"
)

// NewVariablesCommand builds `ruleflow variables <expr>`.
func NewVariablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variables <expr>",
		Short: "List every free variable name referenced by a rule's thresholds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := engine.ExtractVariables(args[0])
			if err != nil {
				return err
			}
			for _, name := range sortedKeys(names) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
