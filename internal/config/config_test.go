package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"llm_provider": "gemini",
		"pinecone_index_host": "https://idx.svc.pinecone.io",
		"cache_max_size": 200,
		"quality_threshold": 7.5,
		"max_iterations": 3,
		"port": 9000
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, "https://idx.svc.pinecone.io", cfg.PineconeIndexHost)
	assert.Equal(t, 200, cfg.CacheMaxSize)
	assert.Equal(t, 7.5, cfg.QualityThreshold)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, 9000, cfg.Port)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile("")
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid openai",
			cfg:  Config{LLMProvider: "openai", OpenAIAPIKey: "sk-test"},
		},
		{
			name:    "openai without key",
			cfg:     Config{LLMProvider: "openai"},
			wantErr: true,
		},
		{
			name: "valid gemini",
			cfg:  Config{LLMProvider: "gemini", GeminiAPIKey: "g-test"},
		},
		{
			name:    "unknown provider",
			cfg:     Config{LLMProvider: "anthropic", OpenAIAPIKey: "k"},
			wantErr: true,
		},
		{
			name:    "negative cache size",
			cfg:     Config{OpenAIAPIKey: "k", CacheMaxSize: -1},
			wantErr: true,
		},
		{
			name:    "threshold out of range",
			cfg:     Config{OpenAIAPIKey: "k", QualityThreshold: 11},
			wantErr: true,
		},
		{
			name:    "invalid port",
			cfg:     Config{OpenAIAPIKey: "k", Port: 70000},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := &Config{LLMProvider: "openai", Port: 9000}
	overlay := &Config{LLMProvider: "gemini", OpenAIAPIKey: "from-overlay", Port: 8000, Verbose: true}

	merged := base.Merge(overlay)

	assert.Equal(t, "openai", merged.LLMProvider, "set fields win")
	assert.Equal(t, "from-overlay", merged.OpenAIAPIKey, "zero fields filled from overlay")
	assert.Equal(t, 9000, merged.Port)
	assert.True(t, merged.Verbose)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_EXPIRATION_HOURS", "abc")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}
