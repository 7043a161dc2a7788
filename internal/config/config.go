package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"x13adjust/internal/x13"
)

// ConfigFileEnv points at an optional YAML config file.
const ConfigFileEnv = "X13_CONFIG_FILE"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"2m"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"10"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"20"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/x13adjust.log"`
}

// EngineConfig contains the seasonal adjustment tunables. The binary
// path default is resolved at load time so that X13AS_PATH keeps
// working the way callers expect.
type EngineConfig struct {
	BinaryPath      string        `yaml:"binary_path" envconfig:"BINARY_PATH"`
	SpanYears       int           `yaml:"span_years" envconfig:"SPAN_YEARS" default:"8" validate:"min=1"`
	MinObservations int           `yaml:"min_observations" envconfig:"MIN_OBSERVATIONS" default:"36" validate:"min=1"`
	Interventions   *string       `yaml:"interventions" envconfig:"INTERVENTIONS"`
	Timeout         time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"60s" validate:"min=1ms"`
	Transform       string        `yaml:"transform" envconfig:"TRANSFORM" default:"auto" validate:"oneof=auto log none"`
}

// Load loads configuration from environment variables and the optional
// config file, then validates it.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("X13", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path := configFilePath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := overlayFile(path, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if cfg.Engine.BinaryPath == "" {
		cfg.Engine.BinaryPath = x13.DefaultConfig().BinaryPath
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath returns the config file location: $X13_CONFIG_FILE if
// set, otherwise config.yaml in the working directory.
func configFilePath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}
	return "config.yaml"
}

// overlayFile merges YAML file values over the env-derived config.
// File values win for any field present in the file.
func overlayFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// X13 builds the engine configuration for internal/x13 from the loaded
// settings. A nil Interventions keeps the default intervention block;
// an explicit empty string disables interventions.
func (c *Config) X13() x13.Config {
	out := x13.DefaultConfig()
	out.BinaryPath = c.Engine.BinaryPath
	out.SpanYears = c.Engine.SpanYears
	out.MinObservations = c.Engine.MinObservations
	out.Timeout = c.Engine.Timeout
	out.Transform = x13.Transform(c.Engine.Transform)
	if c.Engine.Interventions != nil {
		out.Interventions = *c.Engine.Interventions
	}
	return out
}
