package benchmarks

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/mdp-dp-rl/config"
)

var (
	episodes      int
	horizon       int
	saveFile      string
	runs          int
	tolerance     float64
	maxIterations int
	seed          uint64
	cpuprofile    string
)

// GetRootCommand builds the command tree, flag defaults come from the
// environment (see config.Load)
func GetRootCommand() (*cobra.Command, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	rootCommand := &cobra.Command{
		Use:           "mdp",
		Short:         "Dynamic programming and tabular RL on small MDPs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", cfg.Episodes, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", cfg.Horizon, "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", cfg.SavePath, "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", cfg.Runs, "Number of experiment runs")
	rootCommand.PersistentFlags().Float64Var(&tolerance, "tolerance", cfg.Tolerance, "Value iteration convergence tolerance")
	rootCommand.PersistentFlags().IntVar(&maxIterations, "max-iterations", cfg.MaxIterations, "Value iteration cap, 0 for unbounded")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", cfg.Seed, "Seed for environments and policies")
	rootCommand.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "Write a CPU profile to this file in the save folder")
	// adding the subcommands here
	rootCommand.AddCommand(ToyCommand())
	rootCommand.AddCommand(MazeCommand())
	rootCommand.AddCommand(LearnCommand())
	return rootCommand, nil
}
