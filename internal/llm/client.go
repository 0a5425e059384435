package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over LLM providers. All workflow stages request
// JSON output; the strict decode boundary lives in the schemas package, so a
// Client only promises to return the raw response text.
type Client interface {
	// GenerateJSON generates a JSON response using the tier's model profile.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Embedder converts text to a fixed-length numeric vector. Failures surface
// as errors, never as a default vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// NewClient creates a new LLM client based on configuration.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
