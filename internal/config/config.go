package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

const appName = "swarm"

type Config struct {
	DefaultProvider string                    `yaml:"default_provider" mapstructure:"default_provider"`
	DefaultModel    string                    `yaml:"default_model" mapstructure:"default_model"`
	Providers       map[string]ProviderConfig `yaml:"providers" mapstructure:"providers"`
	Orchestrator    OrchestratorConfig        `yaml:"orchestrator" mapstructure:"orchestrator"`
	Logging         LoggingConfig             `yaml:"logging" mapstructure:"logging"`
	Metrics         MetricsConfig             `yaml:"metrics" mapstructure:"metrics"`
	MaxTurns        int                       `yaml:"max_turns" mapstructure:"max_turns"`
	MaxTokens       int                       `yaml:"max_tokens" mapstructure:"max_tokens"`
}

type OrchestratorConfig struct {
	ShowProgress bool `yaml:"show_progress" mapstructure:"show_progress"`
	// DebugLogs enables per-agent transcript files under DebugDir.
	DebugLogs bool   `yaml:"debug_logs" mapstructure:"debug_logs"`
	DebugDir  string `yaml:"debug_dir" mapstructure:"debug_dir"`
}

type ProviderConfig struct {
	Type    string `yaml:"type" mapstructure:"type"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	Model   string `yaml:"model" mapstructure:"model"`
}

type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

type MetricsConfig struct {
	// Addr is the listen address of the metrics endpoint; empty disables it.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	return &Config{
		DefaultProvider: "ollama",
		DefaultModel:    "qwen2.5-coder:7b",
		MaxTurns:        50,
		MaxTokens:       100000,
		Providers: map[string]ProviderConfig{
			"ollama":    {Type: "openai", BaseURL: "http://localhost:11434/v1"},
			"openai":    {Type: "openai", BaseURL: "https://api.openai.com/v1", APIKey: "$OPENAI_API_KEY", Model: "gpt-4o-mini"},
			"anthropic": {Type: "anthropic", APIKey: "$ANTHROPIC_API_KEY"},
		},
		Orchestrator: OrchestratorConfig{
			ShowProgress: true,
			DebugDir:     ".",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Dir is the configuration directory, $XDG_CONFIG_HOME/swarm or
// ~/.config/swarm.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// Load reads path, or config.yaml from the working directory and Dir when
// path is empty. A missing config file is not an error. Every scalar key
// can be overridden from the environment as SWARM_<KEY>, with dots
// replaced by underscores.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetDefault("default_provider", cfg.DefaultProvider)
	v.SetDefault("default_model", cfg.DefaultModel)
	v.SetDefault("max_turns", cfg.MaxTurns)
	v.SetDefault("max_tokens", cfg.MaxTokens)
	v.SetDefault("orchestrator.show_progress", cfg.Orchestrator.ShowProgress)
	v.SetDefault("orchestrator.debug_logs", cfg.Orchestrator.DebugLogs)
	v.SetDefault("orchestrator.debug_dir", cfg.Orchestrator.DebugDir)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("metrics.addr", cfg.Metrics.Addr)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	for name, p := range cfg.Providers {
		p.APIKey = expandEnv(p.APIKey)
		p.BaseURL = expandEnv(p.BaseURL)
		cfg.Providers[name] = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ProviderFor(name string) (ProviderConfig, bool) {
	p, ok := c.Providers[name]
	return p, ok
}

// Validate checks the configuration and fills in limits left unset.
// Missing API keys are reported when the provider is built, so an unused
// provider never blocks startup.
func (c *Config) Validate() error {
	if c.DefaultProvider == "" {
		return fmt.Errorf("config: default_provider is required")
	}
	if _, ok := c.Providers[c.DefaultProvider]; !ok {
		return fmt.Errorf("config: default_provider %q not found in providers", c.DefaultProvider)
	}
	for name, p := range c.Providers {
		switch p.Type {
		case "openai":
			if p.BaseURL == "" {
				return fmt.Errorf("config: provider %q (type openai) requires base_url", name)
			}
		case "anthropic":
		default:
			return fmt.Errorf("config: provider %q has invalid type %q (must be openai or anthropic)", name, p.Type)
		}
	}
	if c.MaxTurns < 1 {
		c.MaxTurns = 50
	}
	if c.MaxTokens < 1 {
		c.MaxTokens = 100000
	}
	if c.Orchestrator.DebugDir == "" {
		c.Orchestrator.DebugDir = "."
	}
	return nil
}
