package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestIngestCommand_FlagValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "neither file nor url",
			args:        []string{"ingest"},
			errorString: "either --file or --url",
		},
		{
			name:        "file and url are mutually exclusive",
			args:        []string{"ingest", "--file", "essays.json", "--url", "https://example.com"},
			errorString: "mutually exclusive",
		},
		{
			name:        "url requires school",
			args:        []string{"ingest", "--url", "https://example.com"},
			errorString: "--school is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ingestFile = ""
			ingestURL = ""
			ingestSchool = ""

			err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestCutCommand_RejectsNonPositiveLimit(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "test-key")

	essayFile := filepath.Join(t.TempDir(), "essay.txt")
	require.NoError(t, os.WriteFile(essayFile, []byte("Why this school matters to me."), 0o644))

	err := execute(t, "cut-words", "--essay", essayFile, "--limit", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit must be a positive word count")
}

func TestLoadConfig_FileOverridesEnvironment(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("PORT", "8000")

	configPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"port": 9000, "max_iterations": 3}`), 0o644))

	cfg, err := loadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, "env-key", cfg.OpenAIAPIKey)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
