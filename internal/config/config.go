// Package config loads the service configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config is the full service configuration. Every field has an environment
// binding and a usable default, so a bare `optsrv serve` works out of the
// box.
type Config struct {
	Environment string `env:"ENV" envDefault:"development"`

	HTTP struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"5m"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}

	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}

	Optimization struct {
		// Workers bounds the goroutines running experiment trials.
		Workers int `env:"OPT_WORKERS" envDefault:"4"`
		// Trials is the default run count per experiment.
		Trials int `env:"OPT_TRIALS" envDefault:"100"`
		// MaxIterations is the default per-run iteration cap.
		MaxIterations int `env:"OPT_MAX_ITERATIONS" envDefault:"1000"`
		// PopulationSize is the default genetic population limit and
		// particle count.
		PopulationSize int `env:"OPT_POPULATION_SIZE" envDefault:"200"`
	}
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Environment == "development" && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}
