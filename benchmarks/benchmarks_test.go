package benchmarks

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/mdp-dp-rl/grid"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cmd, err := GetRootCommand()
	require.NoError(t, err)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestToyCommand(t *testing.T) {
	out := execute(t, "toy", "--iterations", "6", "--verbose")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "Iteration: 0, V: [0 0 10 10], epsilon: 20", lines[0])
	assert.True(t, strings.HasPrefix(lines[6], "Iterations: 5, "))
	assert.Equal(t, "Policy: [0 1 1 1]", lines[8])
}

func TestMazeCommand(t *testing.T) {
	dir := t.TempDir()
	out := execute(t, "maze", "--save", dir)
	assert.True(t, strings.HasPrefix(out, "Iterations: 30, "))
	assert.Contains(t, out, ">  >  G  <")
	assert.FileExists(t, filepath.Join(dir, "maze_values.png"))
	assert.FileExists(t, filepath.Join(dir, "maze_epsilon.png"))
	assert.FileExists(t, filepath.Join(dir, "maze_result.json"))
}

func TestMazeCommandRejectsBadDynamics(t *testing.T) {
	cmd, err := GetRootCommand()
	require.NoError(t, err)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"maze", "--save", t.TempDir(), "--slip", "0.3"})
	assert.Error(t, cmd.Execute())
}

func TestLearn(t *testing.T) {
	dir := t.TempDir()
	agreement, err := Learn(context.Background(), io.Discard, LearnConfig{
		Maze:      grid.DefaultMazeConfig(),
		Episodes:  300,
		Horizon:   100,
		Runs:      1,
		SavePath:  dir,
		Alpha:     0.2,
		Epsilon:   0.2,
		Tolerance: 0.01,
		Seed:      1,
	})
	require.NoError(t, err)
	require.Contains(t, agreement, "QLearning")
	require.Contains(t, agreement, "ModelBased")
	for _, a := range agreement {
		assert.GreaterOrEqual(t, a, 0.0)
		assert.LessOrEqual(t, a, 1.0)
	}
	assert.GreaterOrEqual(t, agreement["ModelBased"], 0.6)
	assert.FileExists(t, filepath.Join(dir, "0_returns.png"))
	assert.FileExists(t, filepath.Join(dir, "qlearning_qtable.json"))
	assert.FileExists(t, filepath.Join(dir, "modelbased_values.json"))
	assert.FileExists(t, filepath.Join(dir, "comparison_config.json"))
}
