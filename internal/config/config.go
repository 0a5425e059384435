// Package config provides configuration loading and validation for the essay
// assistant. Values come from the environment, optionally seeded from a JSON
// file for CLI use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds every external setting the service needs. There are no
// package-level globals; callers construct a Config and pass it down.
type Config struct {
	// LLM
	LLMProvider   string `json:"llm_provider,omitempty"`   // "openai" or "gemini"
	OpenAIAPIKey  string `json:"-"`                        // OPENAI_API_KEY
	GeminiAPIKey  string `json:"-"`                        // GEMINI_API_KEY
	GenerateModel string `json:"generate_model,omitempty"` // override for the generation tier

	// Retrieval
	PineconeAPIKey    string `json:"-"` // PINECONE_API_KEY
	PineconeIndexHost string `json:"pinecone_index_host,omitempty"`
	CohereAPIKey      string `json:"-"` // COHERE_API_KEY

	// Cache
	CacheMaxSize int `json:"cache_max_size,omitempty"`

	// Workflow
	QualityThreshold float64 `json:"quality_threshold,omitempty"`
	MaxIterations    int     `json:"max_iterations,omitempty"`

	// Persistence (optional; empty disables run history)
	DatabaseURL string `json:"-"`

	// Server
	Port        int  `json:"port,omitempty"`
	AuthEnabled bool `json:"auth_enabled,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

// FromEnv builds a Config from environment variables.
func FromEnv() *Config {
	return &Config{
		LLMProvider:       envString("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GenerateModel:     os.Getenv("GENERATE_MODEL"),
		PineconeAPIKey:    os.Getenv("PINECONE_API_KEY"),
		PineconeIndexHost: os.Getenv("PINECONE_INDEX_HOST"),
		CohereAPIKey:      os.Getenv("COHERE_API_KEY"),
		CacheMaxSize:      envInt("CACHE_MAX_SIZE", 0),
		QualityThreshold:  envFloat("QUALITY_THRESHOLD", 0),
		MaxIterations:     envInt("MAX_ITERATIONS", 0),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Port:              envInt("PORT", 8000),
		AuthEnabled:       envBool("AUTH_ENABLED", false),
	}
}

// LoadFile reads a JSON config file. Fields absent from the file stay zero.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is internally consistent and that
// the keys the selected provider needs are present.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "", "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("config error: OPENAI_API_KEY is required")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: GEMINI_API_KEY is required")
		}
	default:
		return fmt.Errorf("config error: unknown LLM provider %q", c.LLMProvider)
	}

	if c.CacheMaxSize < 0 {
		return fmt.Errorf("config error: 'cache_max_size' must be non-negative")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("config error: 'max_iterations' must be non-negative")
	}
	if c.QualityThreshold < 0 || c.QualityThreshold > 10 {
		return fmt.Errorf("config error: 'quality_threshold' must be between 0 and 10")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	return nil
}

// Merge returns a copy of c with zero-valued fields filled from overlay.
// CLI flags beat the file, the file beats the environment.
func (c *Config) Merge(overlay *Config) *Config {
	result := *c

	if result.LLMProvider == "" {
		result.LLMProvider = overlay.LLMProvider
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = overlay.OpenAIAPIKey
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = overlay.GeminiAPIKey
	}
	if result.GenerateModel == "" {
		result.GenerateModel = overlay.GenerateModel
	}
	if result.PineconeAPIKey == "" {
		result.PineconeAPIKey = overlay.PineconeAPIKey
	}
	if result.PineconeIndexHost == "" {
		result.PineconeIndexHost = overlay.PineconeIndexHost
	}
	if result.CohereAPIKey == "" {
		result.CohereAPIKey = overlay.CohereAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = overlay.DatabaseURL
	}
	if result.CacheMaxSize == 0 {
		result.CacheMaxSize = overlay.CacheMaxSize
	}
	if result.QualityThreshold == 0 {
		result.QualityThreshold = overlay.QualityThreshold
	}
	if result.MaxIterations == 0 {
		result.MaxIterations = overlay.MaxIterations
	}
	if result.Port == 0 {
		result.Port = overlay.Port
	}
	if !result.AuthEnabled {
		result.AuthEnabled = overlay.AuthEnabled
	}
	if !result.Verbose {
		result.Verbose = overlay.Verbose
	}

	return &result
}

func envString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func envFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func envBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
