package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mehrshadshams/reactive/pkg/engine"
)

// NewValidateCommand builds `ruleflow validate <expr> [--known-metrics-file f.yaml]`.
func NewValidateCommand() *cobra.Command {
	var knownFile string

	cmd := &cobra.Command{
		Use:   "validate <expr>",
		Short: "Validate a rule expression, printing errors and warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			knownMetrics, knownVariables, err := loadKnownSets(knownFile)
			if err != nil {
				return err
			}
			result, err := engine.Validate(args[0], knownMetrics, knownVariables)
			if err != nil {
				return err
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w.Message)
			}
			for _, e := range result.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", e)
			}
			if !result.IsValid() {
				return result.Err()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&knownFile, "known-metrics-file", "", "YAML file listing known metrics and variables")
	return cmd
}
