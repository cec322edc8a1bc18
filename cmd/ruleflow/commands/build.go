package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mehrshadshams/reactive/pkg/engine"
)

// NewBuildCommand builds `ruleflow build <expr>`: parses and validates
// the expression, then reports the same metrics/variables/complexity a
// caller would need to wire a live source to it. It never attaches a
// sample source itself — transport is out of this module's scope.
func NewBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build <expr>",
		Short: "Compile a rule expression and report its metrics, variables and complexity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			result, err := engine.Validate(text, nil, nil)
			if err != nil {
				return err
			}
			if !result.IsValid() {
				for _, e := range result.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", e)
				}
				return result.Err()
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w.Message)
			}

			metricNames, err := engine.ExtractMetrics(text)
			if err != nil {
				return err
			}
			variableNames, err := engine.ExtractVariables(text)
			if err != nil {
				return err
			}
			complexity, err := engine.AnalyzeComplexity(text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ok")
			fmt.Fprintf(out, "metrics: %v\n", sortedKeys(metricNames))
			fmt.Fprintf(out, "variables: %v\n", sortedKeys(variableNames))
			fmt.Fprintf(out, "node_count: %d, max_depth: %d, aggregation_count: %d, is_high_complexity: %t\n",
				complexity.NodeCount, complexity.MaxDepth, complexity.AggregationCount, complexity.IsHighComplexity())
			return nil
		},
	}
}
