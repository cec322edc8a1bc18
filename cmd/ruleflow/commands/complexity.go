package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mehrshadshams/reactive/pkg/engine"
)

// NewComplexityCommand builds `ruleflow complexity <expr>`.
func NewComplexityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complexity <expr>",
		Short: "Report node_count, condition_count, aggregation_count, max_depth and operator_count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := engine.AnalyzeComplexity(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "node_count: %d\n", c.NodeCount)
			fmt.Fprintf(out, "condition_count: %d\n", c.ConditionCount)
			fmt.Fprintf(out, "aggregation_count: %d\n", c.AggregationCount)
			fmt.Fprintf(out, "max_depth: %d\n", c.MaxDepth)
			fmt.Fprintf(out, "operator_count: %d\n", c.OperatorCount)
			fmt.Fprintf(out, "is_high_complexity: %t\n", c.IsHighComplexity())
			return nil
		},
	}
}
