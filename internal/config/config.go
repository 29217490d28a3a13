// Package config loads application configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Session configuration
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// Renderer used by the HTTP form views, resolved from the renderer
	// registry by name.
	RendererName string `env:"RENDERER" envDefault:"vanilla"`

	// External generator configuration
	GeneratorEnabled bool          `env:"GENERATOR_ENABLED" envDefault:"false"`
	GeneratorTimeout time.Duration `env:"GENERATOR_TIMEOUT" envDefault:"15s"`
	GeminiAPIKey     string        `env:"GEMINI_API_KEY"`
	GeminiModel      string        `env:"GEMINI_MODEL"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error; in containerized environments variables are set externally.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.GeneratorTimeout <= 0 {
		return fmt.Errorf("GENERATOR_TIMEOUT must be positive, got %s", cfg.GeneratorTimeout)
	}
	if cfg.GeneratorEnabled && cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when GENERATOR_ENABLED is true")
	}
	return nil
}
