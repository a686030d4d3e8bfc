package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jenyay/optlib/internal/optimization"
)

func newRunCmd() *cobra.Command {
	opts := &optimizerOptions{}
	var (
		verbose   bool
		precision int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one optimization and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}

			loggers := []optimization.Logger[[]float64]{
				optimization.NewResultOnlyLogger(os.Stdout, precision),
				optimization.NewTimeLogger[[]float64](os.Stdout),
			}
			if verbose {
				loggers = append([]optimization.Logger[[]float64]{
					optimization.NewVerboseLogger(os.Stdout, precision),
				}, loggers...)
			}

			optimizer := buildOptimizer(opts, 0)
			optimizer.SetLoggers(loggers)
			optimizer.FindMin()
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "genetic", "optimization algorithm (genetic, swarm)")
	cmd.Flags().StringVarP(&opts.function, "function", "f", "paraboloid", "benchmark function")
	cmd.Flags().IntVarP(&opts.dimension, "dimension", "d", 3, "search space dimension")
	cmd.Flags().IntVarP(&opts.iterations, "iterations", "n", 1000, "iteration cap")
	cmd.Flags().IntVarP(&opts.population, "population", "p", 200, "population or particle count")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed, 0 for time-based")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "stop when the goal reaches this value, 0 to disable")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the best point every iteration")
	cmd.Flags().IntVar(&precision, "precision", 5, "digits after the decimal point in output")

	return cmd
}
