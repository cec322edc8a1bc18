package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mehrshadshams/reactive/pkg/engine"
)

// NewMetricsCommand builds `ruleflow metrics <expr>`.
func NewMetricsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <expr>",
		Short: "List every metric name referenced by a rule expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := engine.ExtractMetrics(args[0])
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

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
