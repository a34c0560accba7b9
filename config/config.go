// Package config loads the collsh configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/fzft/go-collections/primitive"
)

// DefaultPath is read when no --config flag is given. A missing default file
// is not an error.
const DefaultPath = "collsh.yaml"

// Environment overrides, applied after the file.
const (
	EnvLogLevel        = "COLLSH_LOG_LEVEL"
	EnvLogDevelopment  = "COLLSH_LOG_DEVELOPMENT"
	EnvInitialCapacity = "COLLSH_MAP_INITIAL_CAPACITY"
	EnvHistoryFile     = "COLLSH_HISTORY_FILE"
	EnvPrompt          = "COLLSH_PROMPT"
	EnvMetricsEnabled  = "COLLSH_METRICS_ENABLED"
)

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Map     MapConfig     `yaml:"map"`
	Shell   ShellConfig   `yaml:"shell"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type MapConfig struct {
	// InitialCapacity sizes every map the shell creates.
	InitialCapacity int `yaml:"initial_capacity"`
}

type ShellConfig struct {
	// HistoryFile is empty for ~/.collsh_history and "/dev/null" to keep
	// history in memory only.
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "warn"},
		Map:     MapConfig{InitialCapacity: primitive.DefaultCapacity},
		Shell:   ShellConfig{Prompt: "collsh> "},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads path over the defaults, then applies .env and COLLSH_*
// overrides. Variables already set in the process win over .env entries.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := Default()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := decode(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func decode(data []byte, config *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(config *Config) error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		config.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvHistoryFile); ok {
		config.Shell.HistoryFile = v
	}
	if v, ok := os.LookupEnv(EnvPrompt); ok {
		config.Shell.Prompt = v
	}
	for name, dst := range map[string]*bool{
		EnvLogDevelopment: &config.Log.Development,
		EnvMetricsEnabled: &config.Metrics.Enabled,
	} {
		if v, ok := os.LookupEnv(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = b
		}
	}
	if v, ok := os.LookupEnv(EnvInitialCapacity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvInitialCapacity, err)
		}
		config.Map.InitialCapacity = n
	}
	return nil
}

// Validate rejects values the shell cannot start with.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Map.InitialCapacity < 0 || c.Map.InitialCapacity > primitive.MaxCapacity/2 {
		return fmt.Errorf("map.initial_capacity must be between 0 and %d, got %d",
			primitive.MaxCapacity/2, c.Map.InitialCapacity)
	}
	return nil
}
