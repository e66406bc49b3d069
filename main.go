package main

import (
	"fmt"
	"os"

	"github.com/zeu5/mdp-dp-rl/benchmarks"
)

// main entry point to all the experiments
func main() {
	// rootCommand defines a command line argument parser (some arguments and a subcommand to run)
	rootCommand, err := benchmarks.GetRootCommand()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
