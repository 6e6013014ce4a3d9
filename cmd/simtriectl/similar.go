package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dawgo/simtrie"
	"github.com/dawgo/simtrie/config"
)

func newSimilarCmd() *cobra.Command {
	var (
		budget    float64
		rulesPath string
		transpose bool
		k         int
	)
	cmd := &cobra.Command{
		Use:   "similar <image> <query>",
		Short: "List every key within --budget edits of query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSet(args[0])
			if err != nil {
				return err
			}

			m, err := loadMetric(rulesPath)
			if err != nil {
				return err
			}

			var kPtr *int
			if k > 0 {
				kPtr = &k
			}
			for _, match := range s.Similar([]byte(args[1]), budget, m, transpose, kPtr) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%g\n", match.Key, match.Cost)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&budget, "budget", 1, "maximum total edit cost")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML metric rule file (default: unweighted Levenshtein)")
	cmd.Flags().BoolVar(&transpose, "transpose", false, "allow adjacent-transposition edits")
	cmd.Flags().IntVar(&k, "k", 0, "cap results to the k lowest-cost matches (0 means unlimited, DFS order)")
	return cmd
}

// loadMetric compiles --rules into a *simtrie.Metric, or returns nil (the
// default unweighted Levenshtein metric) when no rules file was given.
func loadMetric(rulesPath string) (*simtrie.Metric, error) {
	if rulesPath == "" {
		return nil, nil
	}
	m, err := config.Compile(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return m, nil
}
