package benchmarks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/mdp-dp-rl/grid"
	"github.com/zeu5/mdp-dp-rl/mdp"
	"github.com/zeu5/mdp-dp-rl/policies"
	"github.com/zeu5/mdp-dp-rl/types"
	"github.com/zeu5/mdp-dp-rl/util"
)

// LearnConfig configures the comparison of the learners on the maze
type LearnConfig struct {
	Maze      grid.MazeConfig
	Episodes  int
	Horizon   int
	Runs      int
	SavePath  string
	Alpha     float64
	Epsilon   float64
	Tolerance float64
	Seed      uint64

	// cap on value iteration sweeps, unbounded when <= 0
	MaxIterations int
}

// Learn compares a random policy, Q-learning and model based value
// iteration on the maze. The learned greedy policies are compared
// against the one value iteration finds on the true model.
func Learn(ctx context.Context, out io.Writer, cfg LearnConfig) (map[string]float64, error) {
	m, err := grid.NewMaze(cfg.Maze)
	if err != nil {
		return nil, err
	}
	planning := []mdp.Option{mdp.WithTolerance(cfg.Tolerance), mdp.WithMaxIterations(cfg.MaxIterations)}
	result, err := mdp.ValueIteration(m, make([]float64, m.NumStates()), planning...)
	if err != nil {
		return nil, err
	}
	exact, err := mdp.ExtractPolicy(m, result.Values)
	if err != nil {
		return nil, err
	}
	// any action is optimal where the exact values tie
	decisive, err := policies.DecisiveStates(m, result.Values, 1e-9)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(grid.AllMovements))
	for i, movement := range grid.AllMovements {
		names[i] = movement.Direction
	}
	environment := func(offset uint64) (*types.ModelEnvironment, error) {
		return types.NewModelEnvironment(m, 0, cfg.Seed+offset, names...)
	}

	c, err := types.NewComparison(&types.ComparisonConfig{
		Runs:       cfg.Runs,
		Episodes:   cfg.Episodes,
		Horizon:    cfg.Horizon,
		RecordPath: cfg.SavePath,
		Out:        out,
	})
	if err != nil {
		return nil, err
	}
	c.AddAnalysis("Returns", types.NewReturnAnalyzer(cfg.Maze.Discount), types.ReturnComparator(cfg.SavePath, 20))

	qLearning := policies.NewQLearningPolicy(cfg.Alpha, cfg.Maze.Discount, cfg.Epsilon, cfg.Seed+1)
	modelBased := policies.NewModelBasedPolicy(m.NumStates(), m.NumActions(), cfg.Maze.Discount, cfg.Epsilon, cfg.Seed+2, planning...)
	learners := []struct {
		name   string
		policy types.Policy
	}{
		{"Random", types.NewRandomPolicy(cfg.Seed)},
		{"QLearning", qLearning},
		{"ModelBased", modelBased},
	}
	environments := make([]*types.ModelEnvironment, len(learners))
	for i, l := range learners {
		environments[i], err = environment(uint64(i))
		if err != nil {
			return nil, err
		}
		c.AddExperiment(types.NewExperiment(l.name, l.policy, environments[i]))
	}

	if err := c.Run(ctx); err != nil {
		return nil, err
	}
	if err := modelBased.Err(); err != nil {
		return nil, fmt.Errorf("model based planning: %w", err)
	}
	if err := recordLearners(cfg.SavePath, qLearning, modelBased); err != nil {
		return nil, err
	}

	agreement := make(map[string]float64)
	learned := map[string]mdp.Policy{
		"QLearning":  qLearning.Greedy(environments[1].States()),
		"ModelBased": modelBased.Policy(),
	}
	for _, name := range []string{"QLearning", "ModelBased"} {
		policy := learned[name]
		if policy == nil {
			continue
		}
		a, err := policies.PolicyAgreement(exact, policy, decisive...)
		if err != nil {
			return nil, err
		}
		agreement[name] = a
		fmt.Fprintf(out, "%s agrees with value iteration on %.0f%% of the %d decisive states\n", name, a*100, len(decisive))
		fmt.Fprint(out, grid.RenderPolicy(cfg.Maze, policy))
	}
	return agreement, nil
}

// recordLearners saves what the learners ended up with
func recordLearners(savePath string, qLearning *policies.QLearningPolicy, modelBased *policies.ModelBasedPolicy) error {
	if err := qLearning.QTable().Record(path.Join(savePath, "qlearning_qtable.json")); err != nil {
		return err
	}
	return util.WriteJSON(path.Join(savePath, "modelbased_values.json"), map[string]interface{}{
		"values": modelBased.Values(),
		"policy": modelBased.Policy(),
	})
}

func LearnCommand() *cobra.Command {
	cfg := LearnConfig{
		Maze:    grid.DefaultMazeConfig(),
		Alpha:   0.1,
		Epsilon: 0.1,
	}

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Compare Q-learning and model based learning on the maze",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Episodes = episodes
			cfg.Horizon = horizon
			cfg.Runs = runs
			cfg.SavePath = saveFile
			cfg.Tolerance = tolerance
			cfg.MaxIterations = maxIterations
			cfg.Seed = seed

			stop, err := startProfiling(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer stop()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			_, err = Learn(ctx, cmd.OutOrStdout(), cfg)
			return err
		},
	}
	mazeFlags(cmd, &cfg.Maze)
	cmd.Flags().Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "Q-learning step size")
	cmd.Flags().Float64Var(&cfg.Epsilon, "epsilon", cfg.Epsilon, "Exploration rate of the learners")
	return cmd
}
