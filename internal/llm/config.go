// Package llm provides centralized LLM configuration and client abstractions.
// Report variants map to models and phrasing.
package llm

import "time"

// Variant selects the report flavor, which determines the model and prompt used.
type Variant string

const (
	// VariantStandard is the default report for operators and managers
	VariantStandard Variant = "standard"
	// VariantExecutive is a terser report aimed at revenue leadership
	VariantExecutive Variant = "executive"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Generation defaults.
const (
	DefaultTemperature     float32 = 0.7
	DefaultMaxOutputTokens int32   = 1000
	DefaultTimeout                 = 8 * time.Second
)

// Config holds the model configuration for the application
type Config struct {
	Provider        Provider
	Models          map[Variant]string
	Temperature     float32
	MaxOutputTokens int32
	Timeout         time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[Variant]string{
			VariantStandard:  "gemini-2.0-flash",
			VariantExecutive: "gemini-2.5-flash",
		},
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
		Timeout:         DefaultTimeout,
	}
}

// GetModel returns the model name for a given variant
func (c *Config) GetModel(variant Variant) string {
	if model, ok := c.Models[variant]; ok {
		return model
	}
	// Unknown variants use the standard model
	if model, ok := c.Models[VariantStandard]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a variant
func (c *Config) WithModel(variant Variant, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[Variant]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[variant] = model
	return &newConfig
}

// ParseVariant validates a variant name.
func ParseVariant(name string) (Variant, bool) {
	switch Variant(name) {
	case VariantStandard, VariantExecutive:
		return Variant(name), true
	default:
		return "", false
	}
}
