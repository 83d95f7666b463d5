// Package config handles configuration loading for HedgeAI.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"      yaml:"llm"`
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver"`
	News     NewsConfig     `mapstructure:"news"     yaml:"news"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// LLMConfig holds LLM provider configuration.
type LLMConfig struct {
	Primary      string  `mapstructure:"primary"       yaml:"primary"` // "anthropic" or "openai"
	AnthropicKey string  `mapstructure:"anthropic_key" yaml:"anthropic_key"`
	OpenAIKey    string  `mapstructure:"openai_key"    yaml:"openai_key"`
	Model        string  `mapstructure:"model"         yaml:"model"`
	LookupModel  string  `mapstructure:"lookup_model"  yaml:"lookup_model"` // cheap model for ticker lookup
	Temperature  float64 `mapstructure:"temperature"   yaml:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"    yaml:"max_tokens"`
}

// ResolverConfig holds ticker resolution thresholds.
type ResolverConfig struct {
	FuzzyCutoff   float64 `mapstructure:"fuzzy_cutoff"     yaml:"fuzzy_cutoff"`
	MinAIInputLen int     `mapstructure:"min_ai_input_len" yaml:"min_ai_input_len"`
	AITimeoutSec  int     `mapstructure:"ai_timeout_sec"   yaml:"ai_timeout_sec"`
}

// AITimeout returns the AI lookup timeout as a duration.
func (c ResolverConfig) AITimeout() time.Duration {
	return time.Duration(c.AITimeoutSec) * time.Second
}

// NewsConfig holds news retrieval settings.
type NewsConfig struct {
	MaxResults int `mapstructure:"max_results" yaml:"max_results"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns the listen address in host:port form.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.hedgeai/config.yaml (home directory)
//  3. /etc/hedgeai/config.yaml (system)
//
// Environment variables override config file values.
// Format: HEDGEAI_<SECTION>_<KEY>, e.g., HEDGEAI_LLM_ANTHROPIC_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".hedgeai"))
	v.AddConfigPath("/etc/hedgeai")

	v.SetEnvPrefix("HEDGEAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found: fall back to defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("HEDGEAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// LLM defaults
	v.SetDefault("llm.primary", "anthropic")
	v.SetDefault("llm.model", "claude-3-5-sonnet-20241022")
	v.SetDefault("llm.lookup_model", "claude-3-5-haiku-20241022")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 400)

	// Resolver defaults
	v.SetDefault("resolver.fuzzy_cutoff", 0.8)
	v.SetDefault("resolver.min_ai_input_len", 3)
	v.SetDefault("resolver.ai_timeout_sec", 5)

	// News defaults
	v.SetDefault("news.max_results", 5)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("HEDGEAI_LLM_ANTHROPIC_KEY"); key != "" {
		cfg.LLM.AnthropicKey = key
	}
	if key := os.Getenv("HEDGEAI_LLM_OPENAI_KEY"); key != "" {
		cfg.LLM.OpenAIKey = key
	}
	// Accept the conventional vendor variable as well.
	if cfg.LLM.AnthropicKey == "" {
		cfg.LLM.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.LLM.OpenAIKey == "" {
		cfg.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
