package benchmarks

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zeu5/mdp-dp-rl/mdp"
	"github.com/zeu5/mdp-dp-rl/toy"
)

// Toy runs value iteration on the four state example and prints the
// resulting values and greedy policy
func Toy(out io.Writer, iterations int, tolerance float64, verbose bool) error {
	m, err := toy.NewModel()
	if err != nil {
		return err
	}
	opts := []mdp.Option{mdp.WithMaxIterations(iterations), mdp.WithTolerance(tolerance)}
	if verbose {
		opts = append(opts, mdp.WithVerbose(out))
	}
	result, err := mdp.ValueIteration(m, make([]float64, m.NumStates()), opts...)
	if err != nil {
		return err
	}
	policy, err := mdp.ExtractPolicy(m, result.Values)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Iterations: %d, epsilon: %v, converged: %v\n", result.Iterations, result.Epsilon, result.Converged)
	fmt.Fprintf(out, "V: %v\n", result.Values)
	fmt.Fprintf(out, "Policy: %v\n", policy)
	return nil
}

func ToyCommand() *cobra.Command {
	var iterations int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "toy",
		Short: "Value iteration on the four state toy MDP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("iterations") {
				iterations = maxIterations
			}
			return Toy(cmd.OutOrStdout(), iterations, tolerance, verbose)
		},
	}
	cmd.Flags().IntVar(&iterations, "iterations", 0, "Number of sweeps, overrides --max-iterations")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every sweep")
	return cmd
}
