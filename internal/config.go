package internal

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
)

// ErrorMode selects when a container surfaces a selector failure.
type ErrorMode string

const (
	// ErrorDeferred keeps the failure on the memo cell until Render re-raises it.
	ErrorDeferred ErrorMode = "deferred"
	// ErrorImmediate also reports the failure to the host during the notification.
	ErrorImmediate ErrorMode = "immediate"
)

// Config is read from the environment.
type Config struct {
	// Env is "development" or "production". Production silences developer warnings.
	Env string `env:"DUX_ENV" envDefault:"development"`

	// SelectorErrors is the default ErrorMode of new containers.
	SelectorErrors ErrorMode `env:"DUX_SELECTOR_ERRORS" envDefault:"deferred"`
}

func (c Config) Production() bool {
	return c.Env == "production"
}

func (c Config) validate() error {
	switch c.SelectorErrors {
	case ErrorDeferred, ErrorImmediate:
	default:
		return fmt.Errorf("DUX_SELECTOR_ERRORS: unknown mode %q", c.SelectorErrors)
	}

	switch c.Env {
	case "development", "production":
	default:
		return fmt.Errorf("DUX_ENV: unknown environment %q", c.Env)
	}

	return nil
}

// LoadConfig parses Config from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{Env: "development", SelectorErrors: ErrorDeferred}
}

var (
	configOnce sync.Once
	config     Config
)

// CurrentConfig is the environment configuration, loaded once. An invalid
// environment falls back to the defaults.
func CurrentConfig() Config {
	configOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			cfg = defaultConfig()
		}
		config = cfg
	})

	return config
}
