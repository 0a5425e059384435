// Package llm provides centralized LLM configuration and client abstractions.
// This package enables switching between providers and between per-stage
// model profiles without touching the calling code.
package llm

// ModelTier represents the sampling profile a workflow stage requires.
type ModelTier string

const (
	// TierExtract is for deterministic derivation work: style and criteria
	// extraction from retrieved exemplars.
	TierExtract ModelTier = "extract"
	// TierEvaluate is for scoring work: per-suggestion evaluation.
	TierEvaluate ModelTier = "evaluate"
	// TierGenerate is for creative work: suggestion generation and
	// refinement, language edits, general feedback, word cutting.
	TierGenerate ModelTier = "generate"
)

// Provider represents an LLM provider.
type Provider string

// Provider constants define supported LLM providers.
const (
	// ProviderOpenAI is the OpenAI provider (default).
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini Provider = "gemini"
)

// ModelParams is the model name and sampling temperature for one tier.
type ModelParams struct {
	Name        string
	Temperature float64
}

// Config holds the model configuration for the application.
type Config struct {
	Provider       Provider
	Models         map[ModelTier]ModelParams
	EmbeddingModel string
	MaxTokens      int
}

// DefaultConfig returns the default configuration (currently OpenAI).
func DefaultConfig() *Config {
	return DefaultOpenAIConfig()
}

// DefaultOpenAIConfig returns the default OpenAI configuration.
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]ModelParams{
			TierExtract:  {Name: "gpt-4o-mini", Temperature: 0.2},
			TierEvaluate: {Name: "gpt-4o-mini", Temperature: 0.5},
			TierGenerate: {Name: "gpt-4o", Temperature: 0.7},
		},
		EmbeddingModel: "text-embedding-ada-002",
		MaxTokens:      4096,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]ModelParams{
			TierExtract:  {Name: "gemini-2.5-flash-lite", Temperature: 0.2},
			TierEvaluate: {Name: "gemini-2.5-flash", Temperature: 0.5},
			TierGenerate: {Name: "gemini-2.5-pro", Temperature: 0.7},
		},
		EmbeddingModel: "text-embedding-004",
		MaxTokens:      4096,
	}
}

// GetParams returns the model parameters for a given tier.
func (c *Config) GetParams(tier ModelTier) ModelParams {
	if params, ok := c.Models[tier]; ok {
		return params
	}
	// Fallback chain: try evaluate, then extract.
	if params, ok := c.Models[TierEvaluate]; ok {
		return params
	}
	if params, ok := c.Models[TierExtract]; ok {
		return params
	}
	return ModelParams{}
}

// WithModel returns a new Config with specific parameters for a tier.
func (c *Config) WithModel(tier ModelTier, params ModelParams) *Config {
	newConfig := &Config{
		Provider:       c.Provider,
		Models:         make(map[ModelTier]ModelParams),
		EmbeddingModel: c.EmbeddingModel,
		MaxTokens:      c.MaxTokens,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = params
	return newConfig
}
