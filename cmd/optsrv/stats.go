package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jenyay/optlib/internal/optimization"
	"github.com/jenyay/optlib/internal/optimization/stats"
)

func newStatsCmd() *cobra.Command {
	opts := &optimizerOptions{}
	var (
		trials  int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run repeated optimizations and print aggregate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			if trials <= 0 {
				return fmt.Errorf("trials must be positive")
			}

			statistics := stats.Parallel(trials, workers,
				func(worker int, s *stats.Statistics[[]float64]) stats.Runner[[]float64] {
					optimizer := buildOptimizer(opts, int64(worker))
					optimizer.SetLoggers([]optimization.Logger[[]float64]{
						stats.NewRunLogger(s),
					})
					return optimizer
				})

			printStatistics(statistics, opts.threshold)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "genetic", "optimization algorithm (genetic, swarm)")
	cmd.Flags().StringVarP(&opts.function, "function", "f", "paraboloid", "benchmark function")
	cmd.Flags().IntVarP(&opts.dimension, "dimension", "d", 3, "search space dimension")
	cmd.Flags().IntVarP(&opts.iterations, "iterations", "n", 1000, "iteration cap per run")
	cmd.Flags().IntVarP(&opts.population, "population", "p", 200, "population or particle count")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "base random seed, 0 for time-based")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 1e-3, "goal value counting a run as successful")
	cmd.Flags().IntVarP(&trials, "trials", "t", 100, "number of runs")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "parallel workers")

	return cmd
}

func printStatistics(statistics *stats.Statistics[[]float64], threshold float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Runs:\t%d\n", statistics.RunCount())
	fmt.Fprintf(w, "Min iterations:\t%d\n", statistics.MinIterations())

	if average, ok := statistics.AverageGoal(); ok {
		fmt.Fprintf(w, "Average goal:\t%g\n", average)
	}
	if stddev, ok := statistics.StdDevGoal(); ok {
		fmt.Fprintf(w, "Goal stddev:\t%g\n", stddev)
	}
	if threshold > 0 {
		reached := func(solution *optimization.Solution[[]float64]) bool {
			return optimization.CompareGoals(solution.Goal, threshold) <= 0
		}
		if rate, ok := statistics.SuccessRate(reached); ok {
			fmt.Fprintf(w, "Success rate:\t%.1f%%\n", rate*100)
		}
	}
}
