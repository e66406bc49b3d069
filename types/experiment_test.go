package types

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentStopsAtTerminal(t *testing.T) {
	env, err := NewModelEnvironment(chainModel(t), 0, 1)
	require.NoError(t, err)

	agent := NewAgent(&AgentConfig{
		Episodes:    3,
		Horizon:     50,
		Policy:      NewRandomPolicy(3),
		Environment: env,
	})
	agent.Run()

	require.Len(t, agent.Traces(), 3)
	for _, trace := range agent.Traces() {
		require.Greater(t, trace.Len(), 1)
		_, _, reward, last, ok := trace.Last()
		require.True(t, ok)
		assert.True(t, last.Terminal())
		assert.Equal(t, 5.0, reward)
	}
}

func TestAgentHorizon(t *testing.T) {
	env, err := NewModelEnvironment(chainModel(t), 0, 1)
	require.NoError(t, err)

	agent := NewAgent(&AgentConfig{
		Episodes:    1,
		Horizon:     4,
		Policy:      &fixedPolicy{action: 1},
		Environment: env,
	})
	trace := agent.RunEpisode(0)
	assert.Equal(t, 4, trace.Len())
	assert.InDelta(t, -2*(1+0.5+0.25+0.125), trace.Return(0.5), 1e-12)
}

func TestTraceSteps(t *testing.T) {
	env, err := NewModelEnvironment(chainModel(t), 0, 1)
	require.NoError(t, err)
	agent := NewAgent(&AgentConfig{Episodes: 1, Horizon: 10, Policy: &fixedPolicy{action: 0}, Environment: env})

	trace := agent.RunEpisode(0)
	require.Equal(t, 2, trace.Len())
	state, _, reward, next, ok := trace.Get(1)
	require.True(t, ok)
	assert.Equal(t, "1", state.Hash())
	assert.Equal(t, "2", next.Hash())
	assert.Equal(t, 5.0, reward)
	_, _, _, _, ok = trace.Get(2)
	assert.False(t, ok)

	bs, err := trace.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"state":"0","action":"0","reward":-1,"next_state":"1"},{"state":"1","action":"0","reward":5,"next_state":"2"}]`, string(bs))
}

func TestComparisonRun(t *testing.T) {
	dir := t.TempDir()
	env, err := NewModelEnvironment(chainModel(t), 0, 1)
	require.NoError(t, err)

	c, err := NewComparison(&ComparisonConfig{
		Runs:         2,
		Episodes:     5,
		Horizon:      10,
		RecordPath:   dir,
		RecordTraces: true,
		Out:          io.Discard,
	})
	require.NoError(t, err)

	collected := make([][]DataSet, 0)
	c.AddAnalysis("returns", NewReturnAnalyzer(1), func(run int, names []string, ds []DataSet) error {
		assert.Equal(t, []string{"forward"}, names)
		collected = append(collected, ds)
		return nil
	})
	ignore := func(int, []string, []DataSet) error { return nil }
	c.AddAnalysis("zeta", NewReturnAnalyzer(1), ignore)
	c.AddAnalysis("alpha", NewReturnAnalyzer(1), ignore)
	c.AddExperiment(NewExperiment("forward", &fixedPolicy{action: 0}, env))
	require.NoError(t, c.Run(context.Background()))

	require.Len(t, collected, 2)
	assert.Equal(t, []float64{4, 4, 4, 4, 4}, collected[1][0])

	bs, err := os.ReadFile(filepath.Join(dir, "comparison_config.json"))
	require.NoError(t, err)
	var recorded struct {
		Analyzers []string `json:"analyzers"`
	}
	require.NoError(t, json.Unmarshal(bs, &recorded))
	assert.Equal(t, []string{"alpha", "returns", "zeta"}, recorded.Analyzers)
	assert.FileExists(t, filepath.Join(dir, "traces", "forward_0.jsonl"))
}

func TestComparisonCancelled(t *testing.T) {
	env, err := NewModelEnvironment(chainModel(t), 0, 1)
	require.NoError(t, err)
	c, err := NewComparison(&ComparisonConfig{Runs: 1, Episodes: 5, Horizon: 10, RecordPath: t.TempDir(), Out: io.Discard})
	require.NoError(t, err)
	c.AddExperiment(NewExperiment("forward", &fixedPolicy{action: 0}, env))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}

func TestReturnComparator(t *testing.T) {
	dir := t.TempDir()
	comp := ReturnComparator(dir, 2)
	require.NoError(t, comp(0, []string{"a", "b"}, []DataSet{[]float64{1, 2, 3}, []float64{0, 0, 1}}))
	assert.FileExists(t, filepath.Join(dir, "0_returns.png"))
	_, err := os.Stat(filepath.Join(dir, "0_returns.json"))
	assert.NoError(t, err)

	err = comp(1, []string{"a"}, []DataSet{map[string]int{}})
	assert.ErrorContains(t, err, "dataset of a")
	assert.NoFileExists(t, filepath.Join(dir, "1_returns.png"))
}

func TestMovingAverage(t *testing.T) {
	assert.Equal(t, []float64{1, 1.5, 2.5, 3.5}, MovingAverage([]float64{1, 2, 3, 4}, 2))
	assert.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 0))
}

type fixedPolicy struct {
	action int
}

func (f *fixedPolicy) UpdateIteration(int, *Trace) {}

func (f *fixedPolicy) NextAction(_ int, _ State, actions []Action) (Action, bool) {
	return actions[f.action], true
}

func (f *fixedPolicy) Update(int, State, Action, float64, State) {}

func (f *fixedPolicy) Reset() {}
