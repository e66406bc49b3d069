package types

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"

	"github.com/zeu5/mdp-dp-rl/util"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type experimentRunConfig struct {
	CurrentRun int
	Episodes   int
	Horizon    int
	Analyzers  []Analyzer

	RecordTraces   bool
	ReportSavePath string

	Out io.Writer
}

// Experiment pairs a policy with the environment it learns in
type Experiment struct {
	Name        string
	policy      Policy
	environment Environment
}

// NewExperiment creates a new experiment instance
func NewExperiment(name string, policy Policy, environment Environment) *Experiment {
	return &Experiment{
		Name:        name,
		policy:      policy,
		environment: environment,
	}
}

func (e *Experiment) Policy() Policy {
	return e.policy
}

func (e *Experiment) recordTrace(rConfig *experimentRunConfig, trace *Trace) error {
	tracesFile := path.Join(rConfig.ReportSavePath, "traces", e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)+".jsonl")
	bs, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	return util.AppendToFile(tracesFile, string(bs))
}

// Run the experiment for the specified number of episodes, feeding
// every trace to the analyzers
func (e *Experiment) Run(ctx context.Context, rConfig *experimentRunConfig) error {
	agent := NewAgent(&AgentConfig{
		Episodes:    rConfig.Episodes,
		Horizon:     rConfig.Horizon,
		Policy:      e.policy,
		Environment: e.environment,
	})

	for i := 0; i < rConfig.Episodes; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		trace := agent.RunEpisode(i)
		if rConfig.RecordTraces {
			if err := e.recordTrace(rConfig, trace); err != nil {
				return err
			}
		}
		for _, a := range rConfig.Analyzers {
			a.Analyze(rConfig.CurrentRun, i, e.Name, trace)
		}
		fmt.Fprintf(rConfig.Out, "\rExperiment: %s, Episode: %d/%d", e.Name, i+1, rConfig.Episodes)
	}
	fmt.Fprintln(rConfig.Out, "")
	return nil
}

// Reset the policy so that it learns from scratch
func (e *Experiment) Reset() {
	e.policy.Reset()
}

// Generic Dataset that contains information after processing the traces
type DataSet interface{}

// Analyzer compresses the information in the traces to a DataSet
type Analyzer interface {
	// run, episode, experiment, trace
	Analyze(int, int, string, *Trace)
	// Resulting dataset
	DataSet() DataSet
	// Reset the analyzer
	Reset()
}

// Comparator differentiates between different datasets with associated names
// run, experiment names, datasets
type Comparator func(int, []string, []DataSet) error

// ComparisonConfig contains the configuration for the comparison
type ComparisonConfig struct {
	Runs     int // number of runs
	Episodes int // number of episodes
	Horizon  int // number of steps

	RecordPath   string // path to store the results
	RecordTraces bool

	// progress output, os.Stdout when nil
	Out io.Writer
}

// Comparison contains the different experiments to compare
// The traces obtained from the experiments are analyzed
// The analyzed datasets are then compared
type Comparison struct {
	Experiments []*Experiment
	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	cConfig     *ComparisonConfig
}

// NewComparison creates a comparison instance and the folders it records into
func NewComparison(config *ComparisonConfig) (*Comparison, error) {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if err := util.EnsureDir(config.RecordPath); err != nil {
		return nil, err
	}
	if config.RecordTraces {
		if err := util.EnsureDir(path.Join(config.RecordPath, "traces")); err != nil {
			return nil, err
		}
	}

	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		cConfig:     config,
	}, nil
}

// AddAnalysis adds an analyzer and comparator to the comparison
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

// Add experiments to compare
func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// record the configuration of the comparison
func (c *Comparison) recordConfig() error {
	cfg := c.cConfig
	out := make(map[string]interface{})
	out["runs"] = cfg.Runs
	out["episodes"] = cfg.Episodes
	out["horizon"] = cfg.Horizon
	out["record_traces"] = cfg.RecordTraces

	experiments := make([]string, 0)
	for _, e := range c.Experiments {
		experiments = append(experiments, e.Name)
	}
	out["experiments"] = experiments

	analyzers := maps.Keys(c.analyzers)
	slices.Sort(analyzers)
	out["analyzers"] = analyzers

	return util.WriteJSON(path.Join(cfg.RecordPath, "comparison_config.json"), out)
}

// Run the comparison. Policies are reset before every run so that they
// keep what they learned in the last one once Run returns.
func (c *Comparison) Run(ctx context.Context) error {
	if err := c.recordConfig(); err != nil {
		return err
	}

	for run := 0; run < c.cConfig.Runs; run++ {
		fmt.Fprintf(c.cConfig.Out, "Run %d\n", run+1)
		datasets := make(map[string][]DataSet)
		for name := range c.analyzers {
			datasets[name] = make([]DataSet, len(c.Experiments))
		}

		names := make([]string, len(c.Experiments))
		for i, e := range c.Experiments {
			e.Reset()
			if err := e.Run(ctx, c.prepareRunConfig(run)); err != nil {
				return fmt.Errorf("experiment %s: %w", e.Name, err)
			}
			for name, a := range c.analyzers {
				datasets[name][i] = a.DataSet()
				a.Reset()
			}
			names[i] = e.Name
		}
		for name, comp := range c.comparators {
			if err := comp(run, names, datasets[name]); err != nil {
				return fmt.Errorf("comparing %s: %w", name, err)
			}
		}
	}
	return nil
}

// prepare the run configuration for the experiment
func (c *Comparison) prepareRunConfig(run int) *experimentRunConfig {
	rCfg := &experimentRunConfig{
		CurrentRun:     run,
		Episodes:       c.cConfig.Episodes,
		Horizon:        c.cConfig.Horizon,
		Analyzers:      make([]Analyzer, 0),
		RecordTraces:   c.cConfig.RecordTraces,
		ReportSavePath: c.cConfig.RecordPath,
		Out:            c.cConfig.Out,
	}
	for _, a := range c.analyzers {
		rCfg.Analyzers = append(rCfg.Analyzers, a)
	}
	return rCfg
}
