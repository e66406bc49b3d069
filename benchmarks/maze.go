package benchmarks

import (
	"fmt"
	"io"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/mdp-dp-rl/grid"
	"github.com/zeu5/mdp-dp-rl/mdp"
	"github.com/zeu5/mdp-dp-rl/types"
	"github.com/zeu5/mdp-dp-rl/util"
)

// Maze solves the maze with value iteration, prints the policy and saves
// the value heat map, the convergence curve and the result under savePath
func Maze(out io.Writer, cfg grid.MazeConfig, tolerance float64, maxIterations int, savePath string, verbose bool) (*mdp.Result, error) {
	m, err := grid.NewMaze(cfg)
	if err != nil {
		return nil, err
	}
	opts := []mdp.Option{mdp.WithMaxIterations(maxIterations), mdp.WithTolerance(tolerance)}
	if verbose {
		opts = append(opts, mdp.WithVerbose(out))
	}
	result, err := mdp.ValueIteration(m, make([]float64, m.NumStates()), opts...)
	if err != nil {
		return nil, err
	}
	policy, err := mdp.ExtractPolicy(m, result.Values)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Iterations: %d, epsilon: %v, converged: %v\n", result.Iterations, result.Epsilon, result.Converged)
	fmt.Fprint(out, grid.RenderPolicy(cfg, policy))

	if err := util.EnsureDir(savePath); err != nil {
		return nil, err
	}
	if err := grid.SaveValueHeatMap(cfg, result.Values, path.Join(savePath, "maze_values.png")); err != nil {
		return nil, fmt.Errorf("saving heat map: %w", err)
	}
	if err := types.SaveLinePlot(path.Join(savePath, "maze_epsilon.png"), "Value iteration", "Iteration", "Epsilon", []string{"epsilon"}, [][]float64{result.History}); err != nil {
		return nil, fmt.Errorf("saving convergence plot: %w", err)
	}
	record := map[string]interface{}{
		"result": result,
		"policy": policy,
		"config": cfg,
	}
	if err := util.WriteJSON(path.Join(savePath, "maze_result.json"), record); err != nil {
		return nil, err
	}
	return result, nil
}

// mazeFlags binds the maze dynamics to the command flags
func mazeFlags(cmd *cobra.Command, cfg *grid.MazeConfig) {
	cmd.Flags().Float64VarP(&cfg.Intended, "intended", "a", cfg.Intended, "Probability of moving in the chosen direction")
	cmd.Flags().Float64VarP(&cfg.Slip, "slip", "b", cfg.Slip, "Probability of slipping to each side")
	cmd.Flags().Float64Var(&cfg.Discount, "discount", cfg.Discount, "Discount factor")
}

func MazeCommand() *cobra.Command {
	cfg := grid.DefaultMazeConfig()
	var verbose bool

	cmd := &cobra.Command{
		Use:   "maze",
		Short: "Value iteration on the slippery 4x4 maze",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := Maze(cmd.OutOrStdout(), cfg, tolerance, maxIterations, saveFile, verbose)
			return err
		},
	}
	mazeFlags(cmd, &cfg)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every sweep")
	return cmd
}
