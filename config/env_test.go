package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Episodes:      500,
		Horizon:       100,
		SavePath:      "results",
		Runs:          1,
		Tolerance:     0.01,
		MaxIterations: 10000,
		Seed:          42,
	}, cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MDP_EPISODES", "20")
	t.Setenv("MDP_TOLERANCE", "0.5")
	t.Setenv("MDP_SAVE", "/tmp/out")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Episodes)
	assert.Equal(t, 0.5, cfg.Tolerance)
	assert.Equal(t, "/tmp/out", cfg.SavePath)
}

func TestLoadRejectsMalformedValue(t *testing.T) {
	t.Setenv("MDP_MAX_ITERATIONS", "many")

	_, err := Load()
	assert.ErrorContains(t, err, "parse env")
}
