// Package config provides configuration loading and validation for the assessment service.
// Every integration is optional: a missing credential disables the feature instead of failing startup.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonathan/revops-assessment/internal/llm"
	"github.com/jonathan/revops-assessment/internal/server/ratelimit"
)

// Config represents the service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Email     EmailConfig     `mapstructure:"email"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	AllowedOrigin   string        `mapstructure:"allowed_origin"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMConfig configures report generation.
type LLMConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Variant         string        `mapstructure:"variant"`
	Model           string        `mapstructure:"model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// EmailConfig configures the SES email sink.
type EmailConfig struct {
	From       string `mapstructure:"from"`
	Region     string `mapstructure:"region"`
	BookingURL string `mapstructure:"booking_url"`
}

// WebhookConfig configures the spreadsheet webhook sink.
type WebhookConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig configures the HTTP rate limiter.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       string        `mapstructure:"whitelist"`
	Blacklist       string        `mapstructure:"blacklist"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.port":                 "PORT",
	"server.allowed_origin":       "ALLOWED_ORIGIN",
	"log.level":                   "LOG_LEVEL",
	"log.format":                  "LOG_FORMAT",
	"llm.api_key":                 "GEMINI_API_KEY",
	"llm.variant":                 "REPORT_VARIANT",
	"llm.model":                   "GEMINI_MODEL",
	"llm.timeout":                 "LLM_TIMEOUT",
	"email.from":                  "EMAIL_FROM",
	"email.region":                "AWS_REGION",
	"email.booking_url":           "BOOKING_URL",
	"webhook.url":                 "GOOGLE_SHEETS_WEBHOOK_URL",
	"rate_limit.enabled":          "RATE_LIMIT_ENABLED",
	"rate_limit.default_limit":    "RATE_LIMIT_DEFAULT_LIMIT",
	"rate_limit.default_window":   "RATE_LIMIT_DEFAULT_WINDOW",
	"rate_limit.cleanup_interval": "RATE_LIMIT_CLEANUP_INTERVAL",
	"rate_limit.whitelist":        "RATE_LIMIT_WHITELIST",
	"rate_limit.blacklist":        "RATE_LIMIT_BLACKLIST",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origin", "*")
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.variant", string(llm.VariantStandard))
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", float64(llm.DefaultTemperature))
	v.SetDefault("llm.max_output_tokens", int(llm.DefaultMaxOutputTokens))
	v.SetDefault("llm.timeout", llm.DefaultTimeout)

	v.SetDefault("email.from", "")
	v.SetDefault("email.region", "")
	v.SetDefault("email.booking_url", "https://calendly.com/revops-assessment/strategy-call")

	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.timeout", 5*time.Second)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 600)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit.whitelist", "")
	v.SetDefault("rate_limit.blacklist", "")
}

// Load reads configuration from defaults, an optional YAML file and the environment.
// An empty path searches for config.yaml in the working directory and ./configs;
// a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv loads the first .env file found in the working directory or its parents.
// Existing environment variables are never overwritten.
func LoadDotEnv() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			if err := godotenv.Load(candidate); err == nil {
				return candidate
			}
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate checks that configured values are well formed.
// Absent integrations are valid; only malformed values are rejected.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535, got %d", c.Server.Port)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: 'log.level' must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("config error: 'log.format' must be json or console, got %q", c.Log.Format)
	}

	if _, ok := llm.ParseVariant(c.LLM.Variant); !ok {
		return fmt.Errorf("config error: 'llm.variant' must be standard or executive, got %q", c.LLM.Variant)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config error: 'llm.temperature' must be between 0 and 2")
	}
	if c.LLM.MaxOutputTokens <= 0 {
		return fmt.Errorf("config error: 'llm.max_output_tokens' must be positive")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("config error: 'llm.timeout' must be positive")
	}

	if c.Webhook.URL != "" {
		u, err := url.Parse(c.Webhook.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'webhook.url' must be an absolute http(s) URL")
		}
	}
	if c.Webhook.Timeout <= 0 {
		return fmt.Errorf("config error: 'webhook.timeout' must be positive")
	}

	if c.RateLimit.DefaultLimit < 0 {
		return fmt.Errorf("config error: 'rate_limit.default_limit' must be non-negative")
	}
	if c.RateLimit.Enabled && c.RateLimit.DefaultWindow <= 0 {
		return fmt.Errorf("config error: 'rate_limit.default_window' must be positive")
	}

	return nil
}

// GenerationEnabled reports whether a generator credential is configured.
func (c *Config) GenerationEnabled() bool {
	return c.LLM.APIKey != ""
}

// EmailEnabled reports whether the email sink has a sender and region.
func (c *Config) EmailEnabled() bool {
	return c.Email.From != "" && c.Email.Region != ""
}

// WebhookEnabled reports whether the webhook sink has a destination.
func (c *Config) WebhookEnabled() bool {
	return c.Webhook.URL != ""
}

// Variant returns the configured report variant.
func (c *Config) Variant() llm.Variant {
	v, _ := llm.ParseVariant(c.LLM.Variant)
	return v
}

// LLMClientConfig builds the generation configuration.
func (c *Config) LLMClientConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Temperature = float32(c.LLM.Temperature)
	cfg.MaxOutputTokens = int32(c.LLM.MaxOutputTokens)
	cfg.Timeout = c.LLM.Timeout
	if c.LLM.Model != "" {
		cfg = cfg.WithModel(c.Variant(), c.LLM.Model)
	}
	return cfg
}

// RateLimiterConfig builds the rate limiter configuration.
func (c *Config) RateLimiterConfig() *ratelimit.Config {
	return &ratelimit.Config{
		Enabled:         c.RateLimit.Enabled,
		DefaultLimit:    c.RateLimit.DefaultLimit,
		DefaultWindow:   c.RateLimit.DefaultWindow,
		CleanupInterval: c.RateLimit.CleanupInterval,
		IdleTimeout:     time.Hour,
		Whitelist:       ratelimit.ParseIPList(c.RateLimit.Whitelist),
		Blacklist:       ratelimit.ParseIPList(c.RateLimit.Blacklist),
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(),
	}
}
