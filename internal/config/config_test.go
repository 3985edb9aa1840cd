package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 1e-5, cfg.Solver.Accuracy)
	assert.Equal(t, 1000, cfg.Solver.MaxSteps)
	assert.Equal(t, 1e-2, cfg.Solver.StepSize)
	assert.Equal(t, 1000, cfg.Solver.LineSearchSteps)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SOLVER_ACCURACY", "1e-8")
	t.Setenv("SOLVER_MAX_STEPS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 1e-8, cfg.Solver.Accuracy)
	assert.Equal(t, 250, cfg.Solver.MaxSteps)
}

func TestLoadRejectsBadSolverValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero accuracy", "SOLVER_ACCURACY", "0"},
		{"negative accuracy", "SOLVER_ACCURACY", "-1e-5"},
		{"zero budget", "SOLVER_MAX_STEPS", "0"},
		{"negative step", "SOLVER_STEP_SIZE", "-0.1"},
		{"zero inner budget", "SOLVER_LINESEARCH_STEPS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
