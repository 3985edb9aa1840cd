package config

import (
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/mcolyer/descent/internal/optimization"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Solver struct {
		// Accuracy is the default stopping tolerance applied when a
		// request omits one.
		Accuracy float64 `env:"SOLVER_ACCURACY" envDefault:"1e-5"`
		// MaxSteps is the default iteration budget per run.
		MaxSteps int `env:"SOLVER_MAX_STEPS" envDefault:"1000"`
		// StepSize is the default fixed step for gradient descent.
		StepSize float64 `env:"SOLVER_STEP_SIZE" envDefault:"1e-2"`
		// LineSearchSteps bounds the inner golden-section search of
		// steepest descent.
		LineSearchSteps int `env:"SOLVER_LINESEARCH_STEPS" envDefault:"1000"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Development runs default to verbose logging
	if cfg.Environment == "development" && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Solver.Accuracy <= 0 {
		return optimization.NewInvalidInput("config", "SOLVER_ACCURACY must be positive, got %g", c.Solver.Accuracy)
	}
	if c.Solver.MaxSteps <= 0 {
		return optimization.NewInvalidInput("config", "SOLVER_MAX_STEPS must be positive, got %d", c.Solver.MaxSteps)
	}
	if c.Solver.StepSize <= 0 {
		return optimization.NewInvalidInput("config", "SOLVER_STEP_SIZE must be positive, got %g", c.Solver.StepSize)
	}
	if c.Solver.LineSearchSteps <= 0 {
		return optimization.NewInvalidInput("config", "SOLVER_LINESEARCH_STEPS must be positive, got %d", c.Solver.LineSearchSteps)
	}
	return nil
}
