// Package config loads YAML configuration for the orchestration engine,
// with environment overrides and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete engine configuration.
type Config struct {
	Provider     ProviderConfig     `yaml:"provider"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	React        ReactConfig        `yaml:"react"`
	Dialogue     DialogueConfig     `yaml:"dialogue"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// ProviderConfig selects and tunes the reasoning backend.
type ProviderConfig struct {
	Name        string  `yaml:"name"` // "anthropic", "openai", "mock"
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	APIKey      string  `yaml:"api_key,omitempty"`
}

// OrchestratorConfig tunes query routing and decomposition.
type OrchestratorConfig struct {
	ComplexityCutoff float64 `yaml:"complexity_cutoff"`
	HistoryLimit     int     `yaml:"history_limit"`
}

// ReactConfig bounds the reasoning loop.
type ReactConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

// DialogueConfig sizes the session store.
type DialogueConfig struct {
	HistoryWindow int    `yaml:"history_window"`
	MaxSessions   int    `yaml:"max_sessions"`
	SessionTTL    string `yaml:"session_ttl"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "text"
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.overrideFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads a configuration file, falling back to defaults when
// the file is missing or invalid.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:        "mock",
			Temperature: 0.7,
			MaxTokens:   2048,
		},
		Orchestrator: OrchestratorConfig{
			ComplexityCutoff: 0.5,
			HistoryLimit:     50,
		},
		React: ReactConfig{
			MaxIterations: 5,
		},
		Dialogue: DialogueConfig{
			HistoryWindow: 20,
			MaxSessions:   512,
			SessionTTL:    "30m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Provider.Name == "" {
		c.Provider.Name = defaults.Provider.Name
	}
	if c.Provider.Temperature == 0 {
		c.Provider.Temperature = defaults.Provider.Temperature
	}
	if c.Provider.MaxTokens == 0 {
		c.Provider.MaxTokens = defaults.Provider.MaxTokens
	}

	if c.Orchestrator.ComplexityCutoff == 0 {
		c.Orchestrator.ComplexityCutoff = defaults.Orchestrator.ComplexityCutoff
	}
	if c.Orchestrator.HistoryLimit == 0 {
		c.Orchestrator.HistoryLimit = defaults.Orchestrator.HistoryLimit
	}

	if c.React.MaxIterations == 0 {
		c.React.MaxIterations = defaults.React.MaxIterations
	}

	if c.Dialogue.HistoryWindow == 0 {
		c.Dialogue.HistoryWindow = defaults.Dialogue.HistoryWindow
	}
	if c.Dialogue.MaxSessions == 0 {
		c.Dialogue.MaxSessions = defaults.Dialogue.MaxSessions
	}
	if c.Dialogue.SessionTTL == "" {
		c.Dialogue.SessionTTL = defaults.Dialogue.SessionTTL
	}

	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
}

func (c *Config) overrideFromEnv() {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && c.Provider.Name == "anthropic" && c.Provider.APIKey == "" {
		c.Provider.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.Provider.Name == "openai" && c.Provider.APIKey == "" {
		c.Provider.APIKey = key
	}
	if model := os.Getenv("MENTORMESH_MODEL"); model != "" {
		c.Provider.Model = model
	}
	if level := os.Getenv("MENTORMESH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if iters := os.Getenv("MENTORMESH_MAX_ITERATIONS"); iters != "" {
		if n, err := strconv.Atoi(iters); err == nil && n > 0 {
			c.React.MaxIterations = n
		}
	}
}

func (c *Config) validate() error {
	switch c.Provider.Name {
	case "anthropic", "openai", "mock":
	default:
		return fmt.Errorf("unknown provider %q", c.Provider.Name)
	}
	if c.Orchestrator.ComplexityCutoff < 0 || c.Orchestrator.ComplexityCutoff > 1 {
		return fmt.Errorf("orchestrator complexity_cutoff must be in [0, 1]")
	}
	if c.React.MaxIterations < 1 {
		return fmt.Errorf("react max_iterations must be at least 1")
	}
	if c.Dialogue.HistoryWindow < 1 {
		return fmt.Errorf("dialogue history_window must be at least 1")
	}
	if _, err := time.ParseDuration(c.Dialogue.SessionTTL); err != nil {
		return fmt.Errorf("invalid dialogue session_ttl: %w", err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// SessionTTL parses the configured session lifetime.
func (c *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.Dialogue.SessionTTL)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// Save writes the configuration to a file, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
